package willingbox

import "time"

// DerivePhase computes the box's phase from its sub-collections. The
// stored data is the only source of truth; callers re-run this after
// every mutation and on every read. Reveal is the one time-dependent
// rule, so the current time is an input.
func DerivePhase(box *WillingBox, now time.Time) Phase {
	if RevealEligible(now, box.LockedAt) {
		return PhaseRevealed
	}
	if len(box.SelectionA) == SelectionSize && len(box.SelectionB) == SelectionSize {
		return PhaseGuessing
	}
	if len(box.WishesA) == WishListSize && len(box.WishesB) == WishListSize {
		return PhaseSelectingWilling
	}
	return PhasePlantingTrees
}

// RevealEligible reports whether RevealDelay has elapsed since the box
// locked. A box that never locked cannot be revealed.
func RevealEligible(now time.Time, lockedAt *time.Time) bool {
	if lockedAt == nil {
		return false
	}
	return !now.Before(lockedAt.Add(RevealDelay))
}

// RevealAt returns when the box becomes revealable, or nil if it has
// not locked yet.
func RevealAt(lockedAt *time.Time) *time.Time {
	if lockedAt == nil {
		return nil
	}
	at := lockedAt.Add(RevealDelay)
	return &at
}
