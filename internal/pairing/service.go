package pairing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/davidoyelade/willow-backend/internal/willingbox"
)

var (
	ErrPairingNotFound = errors.New("pairing not found")
	ErrPartnerNotFound = errors.New("partner account not found")
	ErrAlreadyPaired   = errors.New("one of the partners is already paired")
	ErrSelfPairing     = errors.New("cannot pair with yourself")
)

type Service interface {
	CreatePairing(ctx context.Context, userID, partnerID int64) (*Pairing, error)
	GetForUser(ctx context.Context, userID int64) (*Pairing, error)

	// ResolveForUser satisfies willingbox.PairingResolver.
	ResolveForUser(ctx context.Context, userID int64) (willingbox.PairingRef, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePairing(ctx context.Context, userID, partnerID int64) (*Pairing, error) {
	if userID == partnerID {
		return nil, ErrSelfPairing
	}

	for _, id := range []int64{userID, partnerID} {
		_, err := s.repo.GetForUser(ctx, id)
		if err == nil {
			return nil, ErrAlreadyPaired
		}
		if err != ErrPairingNotFound {
			return nil, fmt.Errorf("failed to check existing pairing: %w", err)
		}
	}

	p := &Pairing{
		ID:       uuid.NewString(),
		PartnerA: userID,
		PartnerB: partnerID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetForUser(ctx context.Context, userID int64) (*Pairing, error) {
	return s.repo.GetForUser(ctx, userID)
}

func (s *service) ResolveForUser(ctx context.Context, userID int64) (willingbox.PairingRef, error) {
	p, err := s.repo.GetForUser(ctx, userID)
	if err == ErrPairingNotFound {
		return willingbox.PairingRef{}, willingbox.ErrNoPairing
	}
	if err != nil {
		return willingbox.PairingRef{}, err
	}
	return willingbox.PairingRef{ID: p.ID, PartnerA: p.PartnerA, PartnerB: p.PartnerB}, nil
}
