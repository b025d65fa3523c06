// Package store persists user messages for the TBB backend.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Messages is the interface for the backend's message store. The backend
// only ever appends records and counts them; there is no retrieval of
// message bodies through this interface.
type Messages interface {
	// SaveMessage appends one (user, message) record. A nil return means
	// the record is durably written; any write problem surfaces as an
	// error rather than a silent drop.
	SaveMessage(ctx context.Context, user, message string) error

	// CountByUser returns the number of records stored for a user.
	CountByUser(ctx context.Context, user string) (int, error)

	// Close closes the store and releases any resources.
	Close() error
}

// Record is one stored message.
type Record struct {
	ID        uuid.UUID
	User      string
	Message   string
	CreatedAt time.Time
}
