package flow

// internalIndex maps an observable stage index onto its position in the full
// stage sequence. Separators occupy every odd position, so observable stage n
// always sits at 2n. Every insert and remove keeps the alternation intact,
// which is what makes this mapping valid.
func internalIndex(observable int) int {
	return 2 * observable
}

// observableIndex is the inverse of internalIndex. It reports false for
// separator positions.
func observableIndex(internal int) (int, bool) {
	if internal < 0 || internal%2 != 0 {
		return 0, false
	}
	return internal / 2, true
}
