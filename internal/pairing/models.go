package pairing

import "time"

// Pairing is the durable relationship between two partner accounts.
// Slot assignment is fixed at creation: the creating user becomes
// partner A, the invited user partner B.
type Pairing struct {
	ID        string    `json:"id" db:"id"`
	PartnerA  int64     `json:"partner_a" db:"partner_a"`
	PartnerB  int64     `json:"partner_b" db:"partner_b"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Includes reports whether the user is one of the two partners.
func (p *Pairing) Includes(userID int64) bool {
	return p.PartnerA == userID || p.PartnerB == userID
}

type CreatePairingRequest struct {
	PartnerID int64 `json:"partner_id" validate:"required"`
}
