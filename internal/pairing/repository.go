package pairing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, p *Pairing) error
	GetByID(ctx context.Context, id string) (*Pairing, error)
	GetForUser(ctx context.Context, userID int64) (*Pairing, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Pairing) error {
	query := `
		INSERT INTO pairings (id, partner_a, partner_b)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, p.ID, p.PartnerA, p.PartnerB).Scan(&p.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrPartnerNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create pairing: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Pairing, error) {
	var p Pairing
	query := `SELECT * FROM pairings WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPairingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pairing: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetForUser(ctx context.Context, userID int64) (*Pairing, error) {
	var p Pairing
	query := `SELECT * FROM pairings WHERE partner_a = $1 OR partner_b = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPairingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pairing for user: %w", err)
	}
	return &p, nil
}
