package willingbox

import "time"

// Category classifies what kind of action a wish asks for.
type Category string

const (
	CategoryCommunication Category = "communication"
	CategoryAffection     Category = "affection"
	CategoryHousehold     Category = "household"
	CategoryTimeTogether  Category = "time_together"
	CategoryPersonal      Category = "personal"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCommunication, CategoryAffection, CategoryHousehold,
		CategoryTimeTogether, CategoryPersonal:
		return true
	}
	return false
}

// EffortLevel is the self-declared effort a partner attaches to a
// willing entry, and the level a guess has to match exactly.
type EffortLevel string

const (
	EffortEasy        EffortLevel = "easy"
	EffortModerate    EffortLevel = "moderate"
	EffortChallenging EffortLevel = "challenging"
)

func (e EffortLevel) Valid() bool {
	switch e {
	case EffortEasy, EffortModerate, EffortChallenging:
		return true
	}
	return false
}

// PartnerSlot identifies which side of a pairing is acting. The engine
// never sees user identities, only the slot resolved by the caller.
type PartnerSlot string

const (
	SlotA PartnerSlot = "a"
	SlotB PartnerSlot = "b"
)

func (s PartnerSlot) Valid() bool {
	return s == SlotA || s == SlotB
}

// Other returns the counterpart slot.
func (s PartnerSlot) Other() PartnerSlot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

// Phase is the weekly cycle state. It is always derived from the box's
// sub-collections (see DerivePhase), never set independently.
type Phase string

const (
	PhasePlantingTrees    Phase = "planting_trees"
	PhaseSelectingWilling Phase = "selecting_willing"
	PhaseGuessing         Phase = "guessing"
	PhaseRevealed         Phase = "revealed"
)

const (
	// WishListSize is the exact number of wishes a partner submits per week.
	WishListSize = 12
	// SelectionSize is the exact number of willing entries per selection.
	SelectionSize = 3
	// RevealDelay is how long after locking a box becomes revealable.
	RevealDelay = 7 * 24 * time.Hour
)

// Wish is one candidate action a partner proposes for the other.
type Wish struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	MostWanted  bool        `json:"most_wanted"`
	Position    int         `json:"position"`
	AuthorSlot  PartnerSlot `json:"author_slot"`
}

// WillingEntry is one committed wish inside a willing selection,
// referencing a wish from the counterpart's list.
type WillingEntry struct {
	WishID   string      `json:"wish_id"`
	Priority int         `json:"priority"`
	Effort   EffortLevel `json:"effort"`
}

// WillingBox is the per-week aggregate for one pairing.
type WillingBox struct {
	ID         string         `json:"id"`
	PairingID  string         `json:"pairing_id"`
	PartnerA   int64          `json:"partner_a"`
	PartnerB   int64          `json:"partner_b"`
	WeekNumber int            `json:"week_number"`
	WishesA    []Wish         `json:"wishes_a"`
	WishesB    []Wish         `json:"wishes_b"`
	SelectionA []WillingEntry `json:"selection_a"`
	SelectionB []WillingEntry `json:"selection_b"`
	Locked     bool           `json:"locked"`
	LockedAt   *time.Time     `json:"locked_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Wishes returns the wish list submitted into the given slot.
func (b *WillingBox) Wishes(slot PartnerSlot) []Wish {
	if slot == SlotA {
		return b.WishesA
	}
	return b.WishesB
}

// Selection returns the willing selection submitted into the given slot.
func (b *WillingBox) Selection(slot PartnerSlot) []WillingEntry {
	if slot == SlotA {
		return b.SelectionA
	}
	return b.SelectionB
}

// SlotOf resolves a user ID to their slot in this box.
func (b *WillingBox) SlotOf(userID int64) (PartnerSlot, bool) {
	switch userID {
	case b.PartnerA:
		return SlotA, true
	case b.PartnerB:
		return SlotB, true
	}
	return "", false
}

// Guess is one partner's attempt to recall a single entry of the
// counterpart's willing selection.
type Guess struct {
	WishID string      `json:"wish_id"`
	Effort EffortLevel `json:"effort"`
}

// WeeklyScore collects both partners' guesses for one week and, once
// the reveal condition holds, their final scores.
type WeeklyScore struct {
	ID          string     `json:"id"`
	PairingID   string     `json:"pairing_id"`
	WeekNumber  int        `json:"week_number"`
	GuessesA    []Guess    `json:"guesses_a"`
	GuessesB    []Guess    `json:"guesses_b"`
	ScoreA      int        `json:"score_a"`
	ScoreB      int        `json:"score_b"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Guesses returns the guess set submitted into the given slot.
func (s *WeeklyScore) Guesses(slot PartnerSlot) []Guess {
	if slot == SlotA {
		return s.GuessesA
	}
	return s.GuessesB
}
