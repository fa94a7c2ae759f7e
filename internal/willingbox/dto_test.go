package willingbox

import (
	"testing"
	"time"
)

func TestNewBoxViewRedaction(t *testing.T) {
	lockedAt := time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC)
	wishesA := testWishes(SlotA, WishListSize)
	wishesB := testWishes(SlotB, WishListSize)

	box := &WillingBox{
		ID:         "box-1",
		PairingID:  testPairing,
		PartnerA:   testPartnerA,
		PartnerB:   testPartnerB,
		WeekNumber: 3,
		WishesA:    wishesA,
		WishesB:    wishesB,
		SelectionA: testSelection(wishesB),
		SelectionB: testSelection(wishesA),
		Locked:     true,
		LockedAt:   &lockedAt,
	}

	guessing := NewBoxView(box, PhaseGuessing, SlotA)
	if guessing.PartnerSelection != nil {
		t.Error("partner selection visible during guessing")
	}
	if guessing.YourSelection == nil {
		t.Error("own selection hidden during guessing")
	}
	if guessing.PartnerWishes == nil {
		t.Error("partner wishes hidden although their list is complete")
	}
	if guessing.RevealAt == nil || !guessing.RevealAt.Equal(lockedAt.Add(RevealDelay)) {
		t.Errorf("RevealAt = %v, want %v", guessing.RevealAt, lockedAt.Add(RevealDelay))
	}

	revealed := NewBoxView(box, PhaseRevealed, SlotB)
	if revealed.PartnerSelection == nil {
		t.Error("partner selection hidden after reveal")
	}
	if revealed.YourSlot != SlotB {
		t.Errorf("YourSlot = %q, want %q", revealed.YourSlot, SlotB)
	}
	// Slot B's "your" fields come from the B side of the box.
	if len(revealed.YourWishes) == 0 || revealed.YourWishes[0].ID != wishesB[0].ID {
		t.Error("view for slot b does not show slot b's wishes")
	}
}

func TestNewBoxViewPartnerWishesHiddenWhileIncomplete(t *testing.T) {
	box := &WillingBox{
		ID:         "box-1",
		PairingID:  testPairing,
		WeekNumber: 1,
		WishesA:    testWishes(SlotA, WishListSize),
		WishesB:    testWishes(SlotB, 4),
	}

	view := NewBoxView(box, PhasePlantingTrees, SlotA)
	if view.PartnerWishes != nil {
		t.Error("partial partner wish list exposed")
	}
	if view.PartnerWishesReady {
		t.Error("partner wish list reported ready at 4 of 12")
	}
}

func TestNewScoreViewRedaction(t *testing.T) {
	guessesA := []Guess{{WishID: "x", Effort: EffortEasy}}
	guessesB := []Guess{{WishID: "y", Effort: EffortModerate}}

	pending := &WeeklyScore{
		PairingID:  testPairing,
		WeekNumber: 2,
		GuessesA:   guessesA,
		GuessesB:   guessesB,
	}

	view := NewScoreView(pending, SlotA)
	if view.PartnerGuesses != nil {
		t.Error("partner guesses visible before completion")
	}
	if view.YourScore != nil || view.PartnerScore != nil {
		t.Error("scores visible before completion")
	}
	if len(view.YourGuesses) != 1 || view.YourGuesses[0].WishID != "x" {
		t.Error("own guesses missing from pending view")
	}

	completedAt := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	done := &WeeklyScore{
		PairingID:   testPairing,
		WeekNumber:  2,
		GuessesA:    guessesA,
		GuessesB:    guessesB,
		ScoreA:      3,
		ScoreB:      1,
		Completed:   true,
		CompletedAt: &completedAt,
	}

	viewB := NewScoreView(done, SlotB)
	if viewB.YourScore == nil || *viewB.YourScore != 1 {
		t.Errorf("YourScore for slot b = %v, want 1", viewB.YourScore)
	}
	if viewB.PartnerScore == nil || *viewB.PartnerScore != 3 {
		t.Errorf("PartnerScore for slot b = %v, want 3", viewB.PartnerScore)
	}
	if len(viewB.PartnerGuesses) != 1 || viewB.PartnerGuesses[0].WishID != "x" {
		t.Error("partner guesses missing from completed view")
	}
}
