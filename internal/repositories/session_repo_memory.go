package repositories

import (
	"sync"

	"userhub/internal/models"
)

// MemorySessionRepository is an in-memory implementation of
// SessionRepository. Sessions do not need durability, so this is usable both
// in tests and in single-process deployments that accept logins not
// surviving a restart. User resolution is delegated to a UserRepository.
type MemorySessionRepository struct {
	users    UserRepository
	sessions map[string]uint
	mu       sync.RWMutex
}

// NewMemorySessionRepository creates a new instance of MemorySessionRepository.
func NewMemorySessionRepository(users UserRepository) *MemorySessionRepository {
	return &MemorySessionRepository{
		users:    users,
		sessions: make(map[string]uint),
	}
}

// Bind associates the session with a user.
func (r *MemorySessionRepository) Bind(sid string, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sid] = userID
	return nil
}

// Unbind returns the session to anonymous.
func (r *MemorySessionRepository) Unbind(sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sid)
	return nil
}

// GetUser resolves the session to its bound user.
func (r *MemorySessionRepository) GetUser(sid string) (*models.User, error) {
	r.mu.RLock()
	userID, ok := r.sessions[sid]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return r.users.GetByID(userID)
}
