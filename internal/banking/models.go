package banking

import (
	"time"

	"github.com/google/uuid"
)

// BankEntry is one signed movement in a ship's surplus bank for a
// reporting year. Positive entries bank surplus, negative entries
// apply it. The ledger is append-only; the banked total for a
// (ship, year) is the sum of its entries.
type BankEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ShipID    string    `db:"ship_id" json:"ship_id"`
	Year      int       `db:"year" json:"year"`
	Amount    float64   `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MovementRequest is the payload for banking or applying surplus.
type MovementRequest struct {
	Year   int     `json:"year" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}
