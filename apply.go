package carbon

// Apply replays p against old and returns the new sequence. Removed spans are located by
// position only; the removed lines carried in p are not consulted (see Patch.Verify).
//
// Deltas out of order, overlapping, or reaching past the end of old fail with an *ApplyError.
func Apply(old []string, p Patch) ([]string, error) {
	size := len(old)
	for _, d := range p {
		size += d.Added - d.Removed
	}
	if size < 0 {
		size = 0
	}
	out := make([]string, 0, size)

	cursor := 0
	for i, d := range p {
		if err := checkDelta(i, d, cursor, len(old)); err != nil {
			return nil, err
		}
		out = append(out, old[cursor:d.OldStart]...)
		out = append(out, d.AddedLines...)
		cursor = d.OldEnd()
	}

	return append(out, old[cursor:]...), nil
}
