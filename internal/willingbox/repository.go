package willingbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository is the storage collaborator for willing boxes and weekly
// scores. Every state transition is a single-document write: the
// mutating methods embed their phase/lock guards in the UPDATE itself
// so two partners racing from separate sessions can never read stale
// state between check and write.
type Repository interface {
	CreateBox(ctx context.Context, box *WillingBox) error
	GetActiveBox(ctx context.Context, pairingID string) (*WillingBox, error)
	GetBoxByWeek(ctx context.Context, pairingID string, week int) (*WillingBox, error)
	SetWishList(ctx context.Context, boxID string, slot PartnerSlot, wishes []Wish, now time.Time) (*WillingBox, error)
	SetSelection(ctx context.Context, boxID string, slot PartnerSlot, entries []WillingEntry, now time.Time) (*WillingBox, error)
	ListRevealDue(ctx context.Context, cutoff time.Time) ([]*WillingBox, error)

	GetScore(ctx context.Context, pairingID string, week int) (*WeeklyScore, error)
	UpsertGuesses(ctx context.Context, pairingID string, week int, slot PartnerSlot, guesses []Guess, now time.Time) (*WeeklyScore, error)
	FinalizeScore(ctx context.Context, pairingID string, week int, scores ScorePair, now time.Time) (*WeeklyScore, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const boxColumns = `id, pairing_id, partner_a, partner_b, week_number,
	wishes_a, wishes_b, selection_a, selection_b, locked, locked_at, created_at, updated_at`

func (r *postgresRepository) CreateBox(ctx context.Context, box *WillingBox) error {
	query := `
		INSERT INTO willing_boxes (
			id, pairing_id, partner_a, partner_b, week_number, locked, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		box.ID, box.PairingID, box.PartnerA, box.PartnerB, box.WeekNumber, box.CreatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		// Another session created this week's box first.
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create willing box: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetActiveBox(ctx context.Context, pairingID string) (*WillingBox, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM willing_boxes
		WHERE pairing_id = $1
		ORDER BY week_number DESC
		LIMIT 1
	`
	return r.scanBox(r.db.QueryRowxContext(ctx, query, pairingID))
}

func (r *postgresRepository) GetBoxByWeek(ctx context.Context, pairingID string, week int) (*WillingBox, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM willing_boxes
		WHERE pairing_id = $1 AND week_number = $2
	`
	return r.scanBox(r.db.QueryRowxContext(ctx, query, pairingID, week))
}

// SetWishList writes one partner's wish list. The guard keeps the
// write inside the planting phase: it succeeds only while at least one
// wish slot is still empty, so a list can no longer change once both
// are in and the phase has advanced.
func (r *postgresRepository) SetWishList(ctx context.Context, boxID string, slot PartnerSlot, wishes []Wish, now time.Time) (*WillingBox, error) {
	payload, err := json.Marshal(wishes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wish list: %w", err)
	}

	var query string
	switch slot {
	case SlotA:
		query = `
			UPDATE willing_boxes
			SET wishes_a = $2, updated_at = $3
			WHERE id = $1
			  AND locked = FALSE
			  AND (wishes_a IS NULL OR wishes_b IS NULL)
			RETURNING ` + boxColumns
	case SlotB:
		query = `
			UPDATE willing_boxes
			SET wishes_b = $2, updated_at = $3
			WHERE id = $1
			  AND locked = FALSE
			  AND (wishes_a IS NULL OR wishes_b IS NULL)
			RETURNING ` + boxColumns
	default:
		return nil, validationErrorf("unknown partner slot %q", slot)
	}

	box, err := r.scanBox(r.db.QueryRowxContext(ctx, query, boxID, payload, now))
	if err == ErrBoxNotFound {
		err = r.explainRejectedWrite(ctx, boxID)
		if err == ErrLocked {
			// Locked implies planting closed long ago; for wish lists
			// the failure is a phase violation, not a lock violation.
			err = ErrInvalidPhase
		}
		return nil, err
	}
	return box, err
}

// SetSelection writes one partner's willing selection and decides the
// lock in the same statement: the SET expressions see the row's
// pre-update values, so "lock iff the other selection already exists"
// is evaluated atomically with the write.
func (r *postgresRepository) SetSelection(ctx context.Context, boxID string, slot PartnerSlot, entries []WillingEntry, now time.Time) (*WillingBox, error) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}

	var query string
	switch slot {
	case SlotA:
		query = `
			UPDATE willing_boxes
			SET selection_a = $2,
			    locked = (selection_b IS NOT NULL),
			    locked_at = CASE WHEN selection_b IS NOT NULL THEN $3 END,
			    updated_at = $3
			WHERE id = $1
			  AND locked = FALSE
			  AND wishes_a IS NOT NULL
			  AND wishes_b IS NOT NULL
			RETURNING ` + boxColumns
	case SlotB:
		query = `
			UPDATE willing_boxes
			SET selection_b = $2,
			    locked = (selection_a IS NOT NULL),
			    locked_at = CASE WHEN selection_a IS NOT NULL THEN $3 END,
			    updated_at = $3
			WHERE id = $1
			  AND locked = FALSE
			  AND wishes_a IS NOT NULL
			  AND wishes_b IS NOT NULL
			RETURNING ` + boxColumns
	default:
		return nil, validationErrorf("unknown partner slot %q", slot)
	}

	box, err := r.scanBox(r.db.QueryRowxContext(ctx, query, boxID, payload, now))
	if err == ErrBoxNotFound {
		return nil, r.explainRejectedWrite(ctx, boxID)
	}
	return box, err
}

// explainRejectedWrite turns a guarded UPDATE that matched no rows into
// the right typed error.
func (r *postgresRepository) explainRejectedWrite(ctx context.Context, boxID string) error {
	query := `SELECT locked FROM willing_boxes WHERE id = $1`
	var locked bool
	err := r.db.QueryRowxContext(ctx, query, boxID).Scan(&locked)
	if err == sql.ErrNoRows {
		return ErrBoxNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect willing box: %w", err)
	}
	if locked {
		return ErrLocked
	}
	return ErrInvalidPhase
}

func (r *postgresRepository) ListRevealDue(ctx context.Context, cutoff time.Time) ([]*WillingBox, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM willing_boxes b
		WHERE b.locked = TRUE
		  AND b.locked_at <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM weekly_scores s
			WHERE s.pairing_id = b.pairing_id
			  AND s.week_number = b.week_number
			  AND s.completed = TRUE
		  )
	`

	rows, err := r.db.QueryxContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list reveal-due boxes: %w", err)
	}
	defer rows.Close()

	var boxes []*WillingBox
	for rows.Next() {
		box, err := r.scanBox(rows)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}
	return boxes, rows.Err()
}

const scoreColumns = `id, pairing_id, week_number, guesses_a, guesses_b,
	score_a, score_b, completed, completed_at, created_at, updated_at`

func (r *postgresRepository) GetScore(ctx context.Context, pairingID string, week int) (*WeeklyScore, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM weekly_scores
		WHERE pairing_id = $1 AND week_number = $2
	`
	return r.scanScore(r.db.QueryRowxContext(ctx, query, pairingID, week))
}

// UpsertGuesses creates the week's score document on first submission
// and replaces the caller's guess set on re-submission, but never once
// the score has completed.
func (r *postgresRepository) UpsertGuesses(ctx context.Context, pairingID string, week int, slot PartnerSlot, guesses []Guess, now time.Time) (*WeeklyScore, error) {
	payload, err := json.Marshal(guesses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal guesses: %w", err)
	}

	var query string
	switch slot {
	case SlotA:
		query = `
			INSERT INTO weekly_scores (id, pairing_id, week_number, guesses_a, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (pairing_id, week_number) DO UPDATE
			SET guesses_a = EXCLUDED.guesses_a, updated_at = EXCLUDED.updated_at
			WHERE weekly_scores.completed = FALSE
			RETURNING ` + scoreColumns
	case SlotB:
		query = `
			INSERT INTO weekly_scores (id, pairing_id, week_number, guesses_b, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (pairing_id, week_number) DO UPDATE
			SET guesses_b = EXCLUDED.guesses_b, updated_at = EXCLUDED.updated_at
			WHERE weekly_scores.completed = FALSE
			RETURNING ` + scoreColumns
	default:
		return nil, validationErrorf("unknown partner slot %q", slot)
	}

	score, err := r.scanScore(r.db.QueryRowxContext(ctx, query, uuid.NewString(), pairingID, week, payload, now))
	if err == ErrScoreNotFound {
		// Row exists but is completed: the guessing window is over.
		return nil, ErrInvalidPhase
	}
	return score, err
}

// FinalizeScore marks the week complete with both computed scores. It
// inserts the score document if neither partner ever guessed. The
// completed guard makes finalization idempotent under concurrent
// sweeps: the second writer matches no row and reads back the winner's.
func (r *postgresRepository) FinalizeScore(ctx context.Context, pairingID string, week int, scores ScorePair, now time.Time) (*WeeklyScore, error) {
	query := `
		INSERT INTO weekly_scores (id, pairing_id, week_number, score_a, score_b, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6, $6)
		ON CONFLICT (pairing_id, week_number) DO UPDATE
		SET score_a = EXCLUDED.score_a,
		    score_b = EXCLUDED.score_b,
		    completed = TRUE,
		    completed_at = EXCLUDED.completed_at,
		    updated_at = EXCLUDED.updated_at
		WHERE weekly_scores.completed = FALSE
		RETURNING ` + scoreColumns

	score, err := r.scanScore(r.db.QueryRowxContext(ctx, query, uuid.NewString(), pairingID, week, scores.ScoreA, scores.ScoreB, now))
	if err == ErrScoreNotFound {
		return r.GetScore(ctx, pairingID, week)
	}
	return score, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresRepository) scanBox(row rowScanner) (*WillingBox, error) {
	var box WillingBox
	var wishesA, wishesB, selA, selB []byte

	err := row.Scan(
		&box.ID, &box.PairingID, &box.PartnerA, &box.PartnerB, &box.WeekNumber,
		&wishesA, &wishesB, &selA, &selB,
		&box.Locked, &box.LockedAt, &box.CreatedAt, &box.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan willing box: %w", err)
	}

	for _, field := range []struct {
		raw  []byte
		dest interface{}
	}{
		{wishesA, &box.WishesA},
		{wishesB, &box.WishesB},
		{selA, &box.SelectionA},
		{selB, &box.SelectionB},
	} {
		if field.raw == nil {
			continue
		}
		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			return nil, fmt.Errorf("failed to decode willing box document: %w", err)
		}
	}
	return &box, nil
}

func (r *postgresRepository) scanScore(row rowScanner) (*WeeklyScore, error) {
	var score WeeklyScore
	var guessesA, guessesB []byte

	err := row.Scan(
		&score.ID, &score.PairingID, &score.WeekNumber,
		&guessesA, &guessesB,
		&score.ScoreA, &score.ScoreB, &score.Completed, &score.CompletedAt,
		&score.CreatedAt, &score.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan weekly score: %w", err)
	}

	if guessesA != nil {
		if err := json.Unmarshal(guessesA, &score.GuessesA); err != nil {
			return nil, fmt.Errorf("failed to decode guesses: %w", err)
		}
	}
	if guessesB != nil {
		if err := json.Unmarshal(guessesB, &score.GuessesB); err != nil {
			return nil, fmt.Errorf("failed to decode guesses: %w", err)
		}
	}
	return &score, nil
}
