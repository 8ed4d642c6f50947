// Package carbon computes and applies line-level patches. A description of the patch file
// format is on Patch.
//
// DiffLines finds every run of identical lines shared by the two inputs (FindBlocks), greedily
// keeps the longest runs that preserve order (PickBlocks), and turns what is left into deltas
// (BuildDeltas). Apply replays a patch against the old lines. The result is not a minimal edit
// script, and moved blocks show up as a deletion plus an insertion.
package carbon

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// DiffLines returns the patch that turns old into new.
func DiffLines(old, new []string, o ...FuncOption) (Patch, error) {
	var cfg config

	for _, f := range o {
		f(&cfg)
	}

	if len(old) == 0 && len(new) == 0 {
		if cfg.emptyPatch {
			return Patch{}, nil
		}
		return nil, ErrEmptyInput
	}

	blocks := FindBlocks(old, new)
	cfg.trace("candidate blocks", blocks)

	picked, err := PickBlocks(blocks)
	if err != nil && !errors.Is(err, ErrDegenerateMatch) {
		return nil, err
	}
	cfg.trace("picked blocks", picked)

	deltas, err := BuildDeltas(old, new, picked)
	if err != nil {
		return nil, err
	}

	return Patch(deltas), nil
}

// MakePatch generates a serialized patch to change before into after. Both inputs must be
// UTF-8 text; lines are split as by SplitLines.
func MakePatch(before, after []byte, o ...FuncOption) ([]byte, error) {
	if !utf8.Valid(before) {
		return nil, errors.New("non-utf8 data in 'before' data")
	}
	if !utf8.Valid(after) {
		return nil, errors.New("non-utf8 data in 'after' data")
	}

	p, err := DiffLines(SplitLines(string(before)), SplitLines(string(after)), o...)
	if err != nil {
		return nil, err
	}

	return p.MarshalText()
}

// ApplyPatch reads before, applies the serialized patch, and returns the result with every line
// newline-terminated.
func ApplyPatch(before, patch []byte) ([]byte, error) {
	p, err := ParsePatch(bytes.NewReader(patch))
	if err != nil {
		return nil, err
	}

	after, err := Apply(SplitLines(string(before)), p)
	if err != nil {
		return nil, err
	}

	return []byte(JoinLines(after)), nil
}
