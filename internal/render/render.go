// Package render prints patches for people to read.
//
// Each delta is shown unified-diff style: a header with 1-based line ranges, then its removed
// lines prefixed with "-" and its added lines prefixed with "+". With color enabled, removed and
// added lines that pair up by position get intra-line highlighting of the changed characters.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/eq99/carbon"
)

const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiGreen     = "\x1b[32m"
	ansiCyan      = "\x1b[36m"
	ansiRedBold   = "\x1b[1;41m"
	ansiGreenBold = "\x1b[1;42m"
)

// Patch writes p to w.
func Patch(w io.Writer, p carbon.Patch, color bool) error {
	var b strings.Builder
	for _, d := range p {
		writeDelta(&b, d, color)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDelta(b *strings.Builder, d carbon.Delta, color bool) {
	header := fmt.Sprintf("@@ -%s +%s @@", lineRange(d.OldStart, d.Removed), lineRange(d.NewStart, d.Added))
	if color {
		header = ansiCyan + header + ansiReset
	}
	b.WriteString(header)
	b.WriteByte('\n')

	paired := 0
	if color {
		paired = min(len(d.RemovedLines), len(d.AddedLines))
	}

	for i, line := range d.RemovedLines {
		switch {
		case i < paired:
			b.WriteString(ansiRed + "-" + highlight(line, d.AddedLines[i], diffmatchpatch.DiffDelete) + ansiReset)
		case color:
			b.WriteString(ansiRed + "-" + line + ansiReset)
		default:
			b.WriteString("-" + line)
		}
		b.WriteByte('\n')
	}
	for i, line := range d.AddedLines {
		switch {
		case i < paired:
			b.WriteString(ansiGreen + "+" + highlight(d.RemovedLines[i], line, diffmatchpatch.DiffInsert) + ansiReset)
		case color:
			b.WriteString(ansiGreen + "+" + line + ansiReset)
		default:
			b.WriteString("+" + line)
		}
		b.WriteByte('\n')
	}
}

// highlight renders one side of a character diff between oldLine and newLine. side selects
// which text is shown: DiffDelete shows oldLine, DiffInsert shows newLine.
func highlight(oldLine, newLine string, side diffmatchpatch.Operation) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	base, bold := ansiRed, ansiRedBold
	if side == diffmatchpatch.DiffInsert {
		base, bold = ansiGreen, ansiGreenBold
	}

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(diff.Text)
		case side:
			b.WriteString(bold + diff.Text + ansiReset + base)
		}
	}
	return b.String()
}

// lineRange formats a unified-diff range. An empty range names the line before it.
func lineRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}
