package willingbox

import "time"

// DTOs for API requests/responses

type WishDTO struct {
	Description string `json:"description" validate:"required,max=280"`
	Category    string `json:"category" validate:"required,oneof=communication affection household time_together personal"`
	MostWanted  bool   `json:"most_wanted"`
	Position    int    `json:"position" validate:"required,min=1,max=12"`
}

type SubmitWishListDTO struct {
	Wishes []WishDTO `json:"wishes" validate:"required,len=12,dive"`
}

func (d *SubmitWishListDTO) ToWishes() []Wish {
	wishes := make([]Wish, 0, len(d.Wishes))
	for _, w := range d.Wishes {
		wishes = append(wishes, Wish{
			Description: w.Description,
			Category:    Category(w.Category),
			MostWanted:  w.MostWanted,
			Position:    w.Position,
		})
	}
	return wishes
}

type WillingEntryDTO struct {
	WishID   string `json:"wish_id" validate:"required"`
	Priority int    `json:"priority" validate:"required,min=1,max=3"`
	Effort   string `json:"effort" validate:"required,oneof=easy moderate challenging"`
}

type SubmitSelectionDTO struct {
	Entries []WillingEntryDTO `json:"entries" validate:"required,len=3,dive"`
}

func (d *SubmitSelectionDTO) ToEntries() []WillingEntry {
	entries := make([]WillingEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, WillingEntry{
			WishID:   e.WishID,
			Priority: e.Priority,
			Effort:   EffortLevel(e.Effort),
		})
	}
	return entries
}

type GuessDTO struct {
	WishID string `json:"wish_id" validate:"required"`
	Effort string `json:"effort" validate:"required,oneof=easy moderate challenging"`
}

type SubmitGuessesDTO struct {
	Guesses []GuessDTO `json:"guesses" validate:"required,min=1,max=3,dive"`
}

func (d *SubmitGuessesDTO) ToGuesses() []Guess {
	guesses := make([]Guess, 0, len(d.Guesses))
	for _, g := range d.Guesses {
		guesses = append(guesses, Guess{
			WishID: g.WishID,
			Effort: EffortLevel(g.Effort),
		})
	}
	return guesses
}

// BoxView is the per-partner projection of a willing box. The
// counterpart's selection stays hidden until the box reveals; exposing
// it earlier would let a partner tune their guesses, which is exactly
// what the lock is protecting against.
type BoxView struct {
	ID                 string         `json:"id"`
	PairingID          string         `json:"pairing_id"`
	WeekNumber         int            `json:"week_number"`
	Phase              Phase          `json:"phase"`
	YourSlot           PartnerSlot    `json:"your_slot"`
	YourWishes         []Wish         `json:"your_wishes,omitempty"`
	PartnerWishes      []Wish         `json:"partner_wishes,omitempty"`
	YourSelection      []WillingEntry `json:"your_selection,omitempty"`
	PartnerSelection   []WillingEntry `json:"partner_selection,omitempty"`
	Locked             bool           `json:"locked"`
	LockedAt           *time.Time     `json:"locked_at,omitempty"`
	RevealAt           *time.Time     `json:"reveal_at,omitempty"`
	PartnerWishesReady bool           `json:"partner_wishes_ready"`
	PartnerSelected    bool           `json:"partner_selected"`
}

// NewBoxView projects a box for one partner. Before locking, the
// counterpart's wish list is only shown once it is complete, and their
// selection is never shown before reveal.
func NewBoxView(box *WillingBox, phase Phase, slot PartnerSlot) *BoxView {
	view := &BoxView{
		ID:                 box.ID,
		PairingID:          box.PairingID,
		WeekNumber:         box.WeekNumber,
		Phase:              phase,
		YourSlot:           slot,
		YourWishes:         box.Wishes(slot),
		YourSelection:      box.Selection(slot),
		Locked:             box.Locked,
		LockedAt:           box.LockedAt,
		RevealAt:           RevealAt(box.LockedAt),
		PartnerWishesReady: len(box.Wishes(slot.Other())) == WishListSize,
		PartnerSelected:    len(box.Selection(slot.Other())) == SelectionSize,
	}
	if view.PartnerWishesReady {
		view.PartnerWishes = box.Wishes(slot.Other())
	}
	if phase == PhaseRevealed {
		view.PartnerSelection = box.Selection(slot.Other())
	}
	return view
}

// ScoreView is the per-partner projection of a weekly score. The
// counterpart's guesses stay hidden until the score completes.
type ScoreView struct {
	PairingID      string     `json:"pairing_id"`
	WeekNumber     int        `json:"week_number"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	YourGuesses    []Guess    `json:"your_guesses,omitempty"`
	PartnerGuesses []Guess    `json:"partner_guesses,omitempty"`
	YourScore      *int       `json:"your_score,omitempty"`
	PartnerScore   *int       `json:"partner_score,omitempty"`
}

func NewScoreView(score *WeeklyScore, slot PartnerSlot) *ScoreView {
	view := &ScoreView{
		PairingID:   score.PairingID,
		WeekNumber:  score.WeekNumber,
		Completed:   score.Completed,
		CompletedAt: score.CompletedAt,
		YourGuesses: score.Guesses(slot),
	}
	if score.Completed {
		yours, partners := score.ScoreA, score.ScoreB
		if slot == SlotB {
			yours, partners = partners, yours
		}
		view.YourScore = &yours
		view.PartnerScore = &partners
		view.PartnerGuesses = score.Guesses(slot.Other())
	}
	return view
}
