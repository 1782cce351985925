package morph

// pick returns the winning decomposition under the over-stripping guard:
// fewest suffixes stripped wins, ties broken by fewest phonological
// repairs, remaining ties by generation order (slot-major, longest
// suffix first, unrepaired base first). ds must be non-empty and in
// generation order.
func pick(ds []Decomposition) Decomposition {
	best := ds[0]
	for _, d := range ds[1:] {
		switch {
		case len(d.Steps) < len(best.Steps):
			best = d
		case len(d.Steps) == len(best.Steps) && d.repairCount() < best.repairCount():
			best = d
		}
	}
	return best
}
