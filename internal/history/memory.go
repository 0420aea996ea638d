package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryRecords is a process-local RecordStore.
type MemoryRecords struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryRecords returns an empty MemoryRecords.
func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{records: make(map[string][]byte)}
}

// Get implements RecordStore.
func (m *MemoryRecords) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records[name]), nil
}

// Put implements RecordStore.
func (m *MemoryRecords) Put(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = slices.Clone(value)
	return nil
}

// Delete implements RecordStore.
func (m *MemoryRecords) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, name)
	return nil
}
