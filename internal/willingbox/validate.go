package willingbox

// ValidateWishList checks the structural invariants of a full wish
// list at submission time: exactly WishListSize entries, positions a
// 1..N permutation, at most one most-wanted flag, and well-formed
// descriptions and categories.
func ValidateWishList(wishes []Wish) error {
	if len(wishes) != WishListSize {
		return validationErrorf("wish list must contain exactly %d wishes, got %d", WishListSize, len(wishes))
	}

	seen := make(map[int]bool, WishListSize)
	mostWanted := 0
	for _, w := range wishes {
		if w.Description == "" {
			return validationErrorf("wish at position %d has an empty description", w.Position)
		}
		if !w.Category.Valid() {
			return validationErrorf("wish at position %d has unknown category %q", w.Position, w.Category)
		}
		if w.Position < 1 || w.Position > WishListSize {
			return validationErrorf("wish position %d is out of range 1..%d", w.Position, WishListSize)
		}
		if seen[w.Position] {
			return validationErrorf("duplicate wish position %d", w.Position)
		}
		seen[w.Position] = true
		if w.MostWanted {
			mostWanted++
		}
	}
	if mostWanted > 1 {
		return validationErrorf("at most one wish may be flagged most-wanted, got %d", mostWanted)
	}
	return nil
}

// ValidateSelection checks a willing selection against the
// counterpart's wish list: exactly SelectionSize entries, priorities a
// permutation of 1..SelectionSize, every wish referenced exactly once
// and belonging to the counterpart.
func ValidateSelection(entries []WillingEntry, counterpartWishes []Wish) error {
	if len(entries) != SelectionSize {
		return validationErrorf("willing selection must contain exactly %d entries, got %d", SelectionSize, len(entries))
	}

	known := make(map[string]bool, len(counterpartWishes))
	for _, w := range counterpartWishes {
		known[w.ID] = true
	}

	priorities := make(map[int]bool, SelectionSize)
	wishIDs := make(map[string]bool, SelectionSize)
	for _, e := range entries {
		if !known[e.WishID] {
			return validationErrorf("wish %q is not in the partner's wish list", e.WishID)
		}
		if wishIDs[e.WishID] {
			return validationErrorf("wish %q is selected more than once", e.WishID)
		}
		wishIDs[e.WishID] = true
		if e.Priority < 1 || e.Priority > SelectionSize {
			return validationErrorf("priority %d is out of range 1..%d", e.Priority, SelectionSize)
		}
		if priorities[e.Priority] {
			return validationErrorf("duplicate priority %d", e.Priority)
		}
		priorities[e.Priority] = true
		if !e.Effort.Valid() {
			return validationErrorf("unknown effort level %q", e.Effort)
		}
	}
	return nil
}

// ValidateGuesses checks a guess set. Unknown wish IDs are allowed
// (they simply score zero), but the set itself has to be well formed:
// no more entries than a selection holds, no duplicate wishes, known
// effort levels.
func ValidateGuesses(guesses []Guess) error {
	if len(guesses) == 0 {
		return validationErrorf("guess set is empty")
	}
	if len(guesses) > SelectionSize {
		return validationErrorf("guess set may contain at most %d entries, got %d", SelectionSize, len(guesses))
	}
	seen := make(map[string]bool, len(guesses))
	for _, g := range guesses {
		if g.WishID == "" {
			return validationErrorf("guess has an empty wish id")
		}
		if seen[g.WishID] {
			return validationErrorf("wish %q is guessed more than once", g.WishID)
		}
		seen[g.WishID] = true
		if !g.Effort.Valid() {
			return validationErrorf("unknown effort level %q", g.Effort)
		}
	}
	return nil
}
