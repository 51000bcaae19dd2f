package repository

import (
	"context"
	"sync"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
)

// MemorySessionRepository implements Session persistence in memory.
// Safe for concurrent use. Intended for tests and local development.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*identityDomain.Session
}

// Create stores a session in memory.
func (m *MemorySessionRepository) Create(_ context.Context, session *identityDomain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

// Get retrieves a session by ID. Returns ErrSessionNotFound if not found.
func (m *MemorySessionRepository) Get(
	_ context.Context,
	sessionID string,
) (*identityDomain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, identityDomain.ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

// Delete removes a session by ID. Deleting a missing session is not an error.
func (m *MemorySessionRepository) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

// NewMemorySessionRepository creates a new in-memory Session repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*identityDomain.Session),
	}
}
