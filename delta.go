package carbon

// Delta is one contiguous edit region: Removed lines starting at old[OldStart] are replaced by
// Added lines, which end up at new[NewStart].
//
// Removed == len(RemovedLines) and Added == len(AddedLines) for any Delta built or parsed by
// this package.
type Delta struct {
	OldStart     int
	Removed      int
	NewStart     int
	Added        int
	RemovedLines []string
	AddedLines   []string
}

// OldEnd is the first old index past the removed region.
func (d Delta) OldEnd() int { return d.OldStart + d.Removed }

// NewEnd is the first new index past the added region.
func (d Delta) NewEnd() int { return d.NewStart + d.Added }

// BuildDeltas fills the gaps around and between the picked blocks with deltas. picked must be
// sorted by OldStart and non-crossing, as returned by PickBlocks.
//
// With no picked blocks the whole of old is replaced by the whole of new. Both sequences being
// empty is ErrEmptyInput.
func BuildDeltas(old, new []string, picked []Block) ([]Delta, error) {
	if len(picked) == 0 {
		if len(old) == 0 && len(new) == 0 {
			return nil, ErrEmptyInput
		}
		return []Delta{newDelta(old, new, 0, len(old), 0, len(new))}, nil
	}

	deltas := []Delta{}
	oldPos, newPos := 0, 0
	for _, b := range picked {
		if b.OldStart > oldPos || b.NewStart > newPos {
			deltas = append(deltas, newDelta(old, new, oldPos, b.OldStart, newPos, b.NewStart))
		}
		oldPos, newPos = b.OldEnd(), b.NewEnd()
	}
	if len(old) > oldPos || len(new) > newPos {
		deltas = append(deltas, newDelta(old, new, oldPos, len(old), newPos, len(new)))
	}

	return deltas, nil
}

// newDelta copies the payload so a Delta never aliases its inputs.
func newDelta(old, new []string, oldFrom, oldTo, newFrom, newTo int) Delta {
	return Delta{
		OldStart:     oldFrom,
		Removed:      oldTo - oldFrom,
		NewStart:     newFrom,
		Added:        newTo - newFrom,
		RemovedLines: append([]string{}, old[oldFrom:oldTo]...),
		AddedLines:   append([]string{}, new[newFrom:newTo]...),
	}
}
