package pooling

import (
	"time"

	"github.com/google/uuid"
)

// Pool groups ships whose compliance balances were redistributed
// together for one reporting year. A pool and its members are written
// atomically, never mutated, and only deletable as a whole.
type Pool struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Year      int          `db:"year" json:"year"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	Members   []PoolMember `json:"members"`
}

// PoolMember records one ship's balance before and after allocation.
type PoolMember struct {
	ID       uuid.UUID `db:"id" json:"id"`
	PoolID   uuid.UUID `db:"pool_id" json:"pool_id"`
	ShipID   string    `db:"ship_id" json:"ship_id"`
	CBBefore float64   `db:"cb_before" json:"cb_before"`
	CBAfter  float64   `db:"cb_after" json:"cb_after"`
}

// CreatePoolRequest is the payload for forming a pool. Only ship IDs
// are accepted; balances are re-derived from stored compliance
// records, never taken from the client.
type CreatePoolRequest struct {
	Year    int      `json:"year" binding:"required"`
	ShipIDs []string `json:"ship_ids" binding:"required"`
}
