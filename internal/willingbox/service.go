package willingbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service runs the weekly cycle for a pairing. All business rules live
// in the pure functions (DerivePhase, ComputeWeeklyScore, the
// validators); the service wires them to the storage collaborator and
// the injected clock.
type Service interface {
	// EnsureActiveBox returns the pairing's current non-revealed box,
	// creating week 1 on first contact and week N+1 once week N has
	// revealed and its score is finalized.
	EnsureActiveBox(ctx context.Context, pairingID string, partnerA, partnerB int64) (*WillingBox, Phase, error)

	SubmitWishList(ctx context.Context, pairingID string, slot PartnerSlot, wishes []Wish) (*WillingBox, error)
	SubmitWillingSelection(ctx context.Context, pairingID string, slot PartnerSlot, entries []WillingEntry) (*WillingBox, error)
	SubmitGuesses(ctx context.Context, pairingID string, slot PartnerSlot, guesses []Guess) (*WeeklyScore, error)

	// GetWeeklyScore returns one week's score document, finalizing it
	// on read if the reveal condition holds but no sweep has run yet.
	GetWeeklyScore(ctx context.Context, pairingID string, week int) (*WeeklyScore, error)

	// FinalizeDueScores completes every locked box whose reveal delay
	// has elapsed. Returns how many boxes were finalized.
	FinalizeDueScores(ctx context.Context) (int, error)
}

type service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService creates the cycle service. cache may be nil; now may be
// nil, in which case time.Now is used.
func NewService(repo Repository, cache *Cache, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, cache: cache, now: now}
}

func (s *service) EnsureActiveBox(ctx context.Context, pairingID string, partnerA, partnerB int64) (*WillingBox, Phase, error) {
	now := s.now()

	if box, ok := s.cache.GetActiveBox(ctx, pairingID); ok {
		if phase := DerivePhase(box, now); phase != PhaseRevealed {
			return box, phase, nil
		}
		// Revealed boxes go through the repository path below so the
		// score gets finalized and the next week created.
	}

	box, err := s.repo.GetActiveBox(ctx, pairingID)
	if err == ErrBoxNotFound {
		return s.startWeek(ctx, pairingID, partnerA, partnerB, 1)
	}
	if err != nil {
		return nil, "", err
	}

	phase := DerivePhase(box, now)
	if phase != PhaseRevealed {
		s.cache.SetActiveBox(ctx, box)
		return box, phase, nil
	}

	if _, err := s.finalizeBox(ctx, box); err != nil {
		return nil, "", err
	}
	return s.startWeek(ctx, pairingID, partnerA, partnerB, box.WeekNumber+1)
}

// startWeek creates a fresh box in planting_trees. A losing racer gets
// ErrConflict from the insert and adopts the winner's box instead.
func (s *service) startWeek(ctx context.Context, pairingID string, partnerA, partnerB int64, week int) (*WillingBox, Phase, error) {
	box := &WillingBox{
		ID:         uuid.NewString(),
		PairingID:  pairingID,
		PartnerA:   partnerA,
		PartnerB:   partnerB,
		WeekNumber: week,
		CreatedAt:  s.now(),
	}
	box.UpdatedAt = box.CreatedAt

	err := s.repo.CreateBox(ctx, box)
	if err == ErrConflict {
		existing, getErr := s.repo.GetActiveBox(ctx, pairingID)
		if getErr != nil {
			return nil, "", getErr
		}
		s.cache.SetActiveBox(ctx, existing)
		return existing, DerivePhase(existing, s.now()), nil
	}
	if err != nil {
		return nil, "", err
	}

	recordBoxCreated()
	s.cache.SetActiveBox(ctx, box)
	return box, PhasePlantingTrees, nil
}

func (s *service) SubmitWishList(ctx context.Context, pairingID string, slot PartnerSlot, wishes []Wish) (*WillingBox, error) {
	if !slot.Valid() {
		return nil, validationErrorf("unknown partner slot %q", slot)
	}
	if err := ValidateWishList(wishes); err != nil {
		return nil, err
	}

	box, err := s.repo.GetActiveBox(ctx, pairingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if DerivePhase(box, now) != PhasePlantingTrees {
		return nil, ErrInvalidPhase
	}

	for i := range wishes {
		if wishes[i].ID == "" {
			wishes[i].ID = uuid.NewString()
		}
		wishes[i].AuthorSlot = slot
	}

	updated, err := s.repo.SetWishList(ctx, box.ID, slot, wishes, now)
	if err != nil {
		return nil, err
	}

	recordWishList(slot)
	s.cache.SetActiveBox(ctx, updated)
	return updated, nil
}

func (s *service) SubmitWillingSelection(ctx context.Context, pairingID string, slot PartnerSlot, entries []WillingEntry) (*WillingBox, error) {
	if !slot.Valid() {
		return nil, validationErrorf("unknown partner slot %q", slot)
	}

	box, err := s.repo.GetActiveBox(ctx, pairingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if phase := DerivePhase(box, now); phase != PhaseSelectingWilling {
		if box.Locked {
			return nil, ErrLocked
		}
		return nil, ErrInvalidPhase
	}

	if err := ValidateSelection(entries, box.Wishes(slot.Other())); err != nil {
		return nil, err
	}

	// The repository re-checks the lock inside the UPDATE itself, so a
	// concurrent counterpart submission cannot slip past the check above.
	updated, err := s.repo.SetSelection(ctx, box.ID, slot, entries, now)
	if err != nil {
		return nil, err
	}

	recordSelection(slot, updated.Locked)
	s.cache.SetActiveBox(ctx, updated)
	return updated, nil
}

func (s *service) SubmitGuesses(ctx context.Context, pairingID string, slot PartnerSlot, guesses []Guess) (*WeeklyScore, error) {
	if !slot.Valid() {
		return nil, validationErrorf("unknown partner slot %q", slot)
	}
	if err := ValidateGuesses(guesses); err != nil {
		return nil, err
	}

	box, err := s.repo.GetActiveBox(ctx, pairingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if DerivePhase(box, now) != PhaseGuessing {
		return nil, ErrInvalidPhase
	}

	score, err := s.repo.UpsertGuesses(ctx, pairingID, box.WeekNumber, slot, guesses, now)
	if err != nil {
		return nil, err
	}

	recordGuessSet(slot)
	return score, nil
}

func (s *service) GetWeeklyScore(ctx context.Context, pairingID string, week int) (*WeeklyScore, error) {
	box, err := s.repo.GetBoxByWeek(ctx, pairingID, week)
	if err != nil {
		return nil, err
	}

	score, err := s.repo.GetScore(ctx, pairingID, week)
	if err != nil && err != ErrScoreNotFound {
		return nil, err
	}
	if err == nil && score.Completed {
		return score, nil
	}

	// Reveal eligibility is recomputed on read; the sweeper is only an
	// optimization.
	if RevealEligible(s.now(), box.LockedAt) {
		return s.finalizeBox(ctx, box)
	}
	if err == ErrScoreNotFound {
		return nil, err
	}
	return score, nil
}

func (s *service) FinalizeDueScores(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-RevealDelay)
	boxes, err := s.repo.ListRevealDue(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, box := range boxes {
		if _, err := s.finalizeBox(ctx, box); err != nil {
			return finalized, err
		}
		finalized++
	}
	return finalized, nil
}

// finalizeBox computes and persists the final scores for a revealed
// box. Partners who never guessed simply score zero.
func (s *service) finalizeBox(ctx context.Context, box *WillingBox) (*WeeklyScore, error) {
	var guessesA, guessesB []Guess

	score, err := s.repo.GetScore(ctx, box.PairingID, box.WeekNumber)
	switch {
	case err == nil:
		if score.Completed {
			return score, nil
		}
		guessesA, guessesB = score.GuessesA, score.GuessesB
	case err == ErrScoreNotFound:
		// No guesses this week; finalize with empty sets.
	default:
		return nil, err
	}

	pair := ComputeWeeklyScore(box.WishesA, box.WishesB, box.SelectionA, box.SelectionB, guessesA, guessesB)
	final, err := s.repo.FinalizeScore(ctx, box.PairingID, box.WeekNumber, pair, s.now())
	if err != nil {
		return nil, err
	}

	recordFinalizedScore(pair)
	return final, nil
}
