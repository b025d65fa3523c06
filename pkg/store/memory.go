package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryMessages is an in-memory Messages implementation, used when no
// database path is configured and in tests.
type MemoryMessages struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryMessages creates an empty in-memory store.
func NewMemoryMessages() *MemoryMessages {
	return &MemoryMessages{}
}

// SaveMessage appends one record.
func (m *MemoryMessages) SaveMessage(_ context.Context, user, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record{
		ID:        uuid.New(),
		User:      user,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// CountByUser returns the number of records stored for a user.
func (m *MemoryMessages) CountByUser(_ context.Context, user string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, r := range m.records {
		if r.User == user {
			count++
		}
	}
	return count, nil
}

// Records returns a copy of everything stored, in insertion order.
func (m *MemoryMessages) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Close is a no-op for the in-memory store.
func (m *MemoryMessages) Close() error {
	return nil
}
