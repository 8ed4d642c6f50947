package carbon

import "sort"

// Block asserts that old[OldStart:OldStart+Length] equals new[NewStart:NewStart+Length] line
// for line.
type Block struct {
	OldStart int
	NewStart int
	Length   int
}

// OldEnd is the first old index past the block.
func (b Block) OldEnd() int { return b.OldStart + b.Length }

// NewEnd is the first new index past the block.
func (b Block) NewEnd() int { return b.NewStart + b.Length }

// Before reports whether b lies entirely before p in both coordinates.
func (b Block) Before(p Block) bool {
	return b.OldEnd() <= p.OldStart && b.NewEnd() <= p.NewStart
}

// After reports whether b lies entirely after p in both coordinates.
func (b Block) After(p Block) bool {
	return b.OldStart >= p.OldEnd() && b.NewStart >= p.NewEnd()
}

// FindBlocks returns every maximal run of identical lines along every diagonal of the
// old x new grid. Runs on different diagonals may overlap. The cost is O(len(old)*len(new)).
func FindBlocks(old, new []string) []Block {
	var blocks []Block
	if len(old) == 0 || len(new) == 0 {
		return blocks
	}

	// Diagonals where new is shifted forward: old[j] vs new[d+j].
	for d := 0; d < len(new); d++ {
		blocks = scanDiagonal(blocks, old, new[d:], 0, d)
	}

	// Diagonals where old is shifted forward: old[d+j] vs new[j].
	for d := 1; d < len(old); d++ {
		blocks = scanDiagonal(blocks, old[d:], new, d, 0)
	}

	return blocks
}

// scanDiagonal walks a and b in lockstep, appending one block per run of equal lines.
// oldOff and newOff translate indices in a and b back to the full sequences.
func scanDiagonal(blocks []Block, a, b []string, oldOff, newOff int) []Block {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	run := 0
	for j := 0; j < n; j++ {
		if a[j] == b[j] {
			run++
			continue
		}
		if run > 0 {
			blocks = append(blocks, Block{OldStart: oldOff + j - run, NewStart: newOff + j - run, Length: run})
			run = 0
		}
	}
	if run > 0 {
		blocks = append(blocks, Block{OldStart: oldOff + n - run, NewStart: newOff + n - run, Length: run})
	}

	return blocks
}

// PickBlocks greedily selects the longest blocks that don't cross any block already selected.
// Candidates are considered longest first; ties go to the smaller OldStart, then the smaller
// NewStart. The result is sorted by OldStart.
//
// The selection is not optimal. If candidates is empty, PickBlocks returns an empty set and
// ErrDegenerateMatch.
func PickBlocks(candidates []Block) ([]Block, error) {
	if len(candidates) == 0 {
		return []Block{}, ErrDegenerateMatch
	}

	sorted := make([]Block, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.OldStart != b.OldStart {
			return a.OldStart < b.OldStart
		}
		return a.NewStart < b.NewStart
	})

	picked := []Block{sorted[0]}
	for _, c := range sorted[1:] {
		if fits(c, picked) {
			picked = append(picked, c)
		}
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].OldStart < picked[j].OldStart
	})

	return picked, nil
}

func fits(c Block, picked []Block) bool {
	for _, p := range picked {
		if !c.Before(p) && !c.After(p) {
			return false
		}
	}
	return true
}
