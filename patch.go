package carbon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiter starts every header line of a serialized patch. Content lines never start with it.
const Delimiter = '\x00'

// Patch is an ordered list of deltas, ascending by OldStart and non-overlapping in old
// coordinates.
//
// The text form is a sequence of records:
//
//	\x00<old_start>,<removed>,<added>\n
//	<removed lines, one per line>
//	<added lines, one per line>
//
// NewStart is not serialized; ParsePatch derives it from the preceding deltas.
type Patch []Delta

// Validate checks that p can be applied to an old sequence of oldLen lines: deltas ordered,
// non-overlapping, within bounds, with payloads matching their counts.
func (p Patch) Validate(oldLen int) error {
	cursor := 0
	for i, d := range p {
		if err := checkDelta(i, d, cursor, oldLen); err != nil {
			return err
		}
		cursor = d.OldEnd()
	}
	return nil
}

func checkDelta(i int, d Delta, cursor, oldLen int) error {
	switch {
	case d.OldStart < 0 || d.Removed < 0 || d.Added < 0:
		return &ApplyError{Index: i, Delta: d, Reason: "negative position or count"}
	case d.OldStart < cursor:
		return &ApplyError{Index: i, Delta: d, Reason: fmt.Sprintf("starts before the end of the previous delta (%d)", cursor)}
	case d.OldEnd() > oldLen:
		return &ApplyError{Index: i, Delta: d, Reason: fmt.Sprintf("extends past the end of the document (%d lines)", oldLen)}
	case d.Added != len(d.AddedLines):
		return &ApplyError{Index: i, Delta: d, Reason: fmt.Sprintf("added count %d but %d added lines", d.Added, len(d.AddedLines))}
	}
	return nil
}

// Verify checks the removed lines carried in p against old. Apply never reads them, so a
// patch can apply cleanly to a document it wasn't made from; Verify catches that.
func (p Patch) Verify(old []string) error {
	if err := p.Validate(len(old)); err != nil {
		return err
	}
	for i, d := range p {
		if d.Removed != len(d.RemovedLines) {
			return &ApplyError{Index: i, Delta: d, Reason: fmt.Sprintf("removed count %d but %d removed lines", d.Removed, len(d.RemovedLines))}
		}
		for j, line := range d.RemovedLines {
			if old[d.OldStart+j] != line {
				return &ApplyError{Index: i, Delta: d, Reason: fmt.Sprintf("removed line %d does not match the document", d.OldStart+j)}
			}
		}
	}
	return nil
}

// WriteTo serializes p to w.
func (p Patch) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(s string) error {
		m, err := bw.WriteString(s)
		n += int64(m)
		return err
	}

	for _, d := range p {
		for _, lines := range [][]string{d.RemovedLines, d.AddedLines} {
			for _, line := range lines {
				if err := checkLine(line); err != nil {
					return n, err
				}
			}
		}
		if err := write(fmt.Sprintf("%c%d,%d,%d\n", Delimiter, d.OldStart, d.Removed, d.Added)); err != nil {
			return n, err
		}
		for _, lines := range [][]string{d.RemovedLines, d.AddedLines} {
			for _, line := range lines {
				if err := write(line + "\n"); err != nil {
					return n, err
				}
			}
		}
	}

	return n, bw.Flush()
}

// MarshalText returns the serialized patch.
func (p Patch) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText replaces p with the patch parsed from text.
func (p *Patch) UnmarshalText(text []byte) error {
	parsed, err := ParsePatch(bytes.NewReader(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func checkLine(line string) error {
	if len(line) > 0 && line[0] == Delimiter {
		return fmt.Errorf("%w: %q starts with %q", ErrDelimiterInContent, line, Delimiter)
	}
	if strings.ContainsRune(line, '\n') {
		return fmt.Errorf("%w: %q contains a newline", ErrDelimiterInContent, line)
	}
	return nil
}

// ParsePatch reads a serialized patch. Errors are *ParseError values matching ErrPatchParse,
// except for errors from r itself.
func ParsePatch(r io.Reader) (Patch, error) {
	br := bufio.NewReader(r)
	patch := Patch{}

	var (
		cur     *Delta
		lineNo  int
		lastRaw string
		shift   int // NewStart - OldStart after the deltas seen so far
	)

	finish := func() error {
		if cur == nil {
			return nil
		}
		if len(cur.RemovedLines) < cur.Removed || len(cur.AddedLines) < cur.Added {
			return &ParseError{Line: lineNo, Text: lastRaw, Reason: fmt.Sprintf(
				"truncated delta: expected %d removed and %d added lines, got %d and %d",
				cur.Removed, cur.Added, len(cur.RemovedLines), len(cur.AddedLines))}
		}
		patch = append(patch, *cur)
		shift += cur.Added - cur.Removed
		cur = nil
		return nil
	}

	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if raw == "" && err == io.EOF {
			break
		}
		lineNo++
		lastRaw = raw
		line := strings.TrimSuffix(raw, "\n")

		if len(line) > 0 && line[0] == Delimiter {
			if ferr := finish(); ferr != nil {
				return nil, ferr
			}
			d, herr := parseHeader(line)
			if herr != nil {
				return nil, &ParseError{Line: lineNo, Text: raw, Reason: herr.Error()}
			}
			d.NewStart = d.OldStart + shift
			cur = &d
		} else {
			switch {
			case cur == nil:
				return nil, &ParseError{Line: lineNo, Text: raw, Reason: "unrecognized line before first header"}
			case len(cur.RemovedLines) < cur.Removed:
				cur.RemovedLines = append(cur.RemovedLines, line)
			case len(cur.AddedLines) < cur.Added:
				cur.AddedLines = append(cur.AddedLines, line)
			default:
				return nil, &ParseError{Line: lineNo, Text: raw, Reason: "unrecognized line"}
			}
		}

		if err == io.EOF {
			break
		}
	}

	if err := finish(); err != nil {
		return nil, err
	}
	return patch, nil
}

func parseHeader(line string) (Delta, error) {
	fields := strings.Split(line[1:], ",")
	if len(fields) != 3 {
		return Delta{}, fmt.Errorf("header has %d fields, want 3", len(fields))
	}

	var nums [3]int
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return Delta{}, fmt.Errorf("bad header field %q: %w", f, err)
		}
		nums[i] = int(v)
	}

	return Delta{
		OldStart:     nums[0],
		Removed:      nums[1],
		Added:        nums[2],
		RemovedLines: make([]string, 0, capHint(nums[1])),
		AddedLines:   make([]string, 0, capHint(nums[2])),
	}, nil
}

// capHint bounds preallocation so a hostile header can't force a huge allocation.
func capHint(n int) int {
	if n > 1024 {
		return 1024
	}
	return n
}
