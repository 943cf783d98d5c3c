// Package thread maps externally-visible conversation ids to the stable
// thread ids the agent service requires.
package thread

import (
	"sync"

	"github.com/google/uuid"
)

// Mapper is a bidirectional, process-lifetime cache from external
// conversation ids to stable upstream thread ids. A stable id is generated
// lazily the first time an external id is seen and reused for every later
// turn of that conversation. It is safe for concurrent use.
//
// There is no eviction; a bounded or TTL policy belongs in a production
// deployment.
type Mapper struct {
	mu       sync.RWMutex
	stable   map[string]string // external -> stable
	external map[string]string // stable -> external
}

// NewMapper creates an empty Mapper.
func NewMapper() *Mapper {
	return &Mapper{
		stable:   make(map[string]string),
		external: make(map[string]string),
	}
}

// Resolve returns the stable id for an external conversation id, creating
// one on first sight. Repeated calls with the same external id always
// return the same stable id.
func (m *Mapper) Resolve(externalID string) string {
	m.mu.RLock()
	if id, ok := m.stable[externalID]; ok {
		m.mu.RUnlock()
		return id
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if id, ok := m.stable[externalID]; ok {
		return id
	}

	id := uuid.NewString()
	m.stable[externalID] = id
	m.external[id] = externalID
	return id
}

// External returns the external id previously mapped to a stable id.
func (m *Mapper) External(stableID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.external[stableID]
	return id, ok
}

// Len returns the number of mapped conversations.
func (m *Mapper) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stable)
}
