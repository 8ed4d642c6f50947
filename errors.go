package carbon

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by DiffLines when both sequences are empty.
	ErrEmptyInput = errors.New("nothing to diff: both inputs are empty")

	// ErrDegenerateMatch is returned by PickBlocks when there were no candidate blocks at all.
	// It is not fatal: DiffLines falls back to a full replace or insert.
	ErrDegenerateMatch = errors.New("no common blocks")

	// ErrDelimiterInContent is returned when a line can't be serialized without being mistaken
	// for a header or splitting into two lines.
	ErrDelimiterInContent = errors.New("line contains patch delimiter")

	ErrPatchParse = errors.New("malformed patch")
	ErrPatchApply = errors.New("patch does not apply")
)

// ParseError describes the first line of a patch that could not be parsed. Line is 1-based.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s: %q", ErrPatchParse, e.Line, e.Reason, e.Text)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrPatchParse
}

// ApplyError reports the delta (by position in the patch) that violated the apply precondition.
type ApplyError struct {
	Index  int
	Delta  Delta
	Reason string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: delta %d (old_start=%d, removed=%d): %s",
		ErrPatchApply, e.Index, e.Delta.OldStart, e.Delta.Removed, e.Reason)
}

func (e *ApplyError) Is(target error) bool {
	return target == ErrPatchApply
}
