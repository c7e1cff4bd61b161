package memory

import (
	"context"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
)

type rosterRepositoryImpl struct {
	store *Store
}

func NewRosterRepository(s *Store) employee.RosterRepository {
	return &rosterRepositoryImpl{store: s}
}

// Load implements employee.RosterRepository. Callers receive a deep copy.
func (r *rosterRepositoryImpl) Load(ctx context.Context) (employee.Roster, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.roster.Clone(), nil
}

// Save implements employee.RosterRepository.
func (r *rosterRepositoryImpl) Save(ctx context.Context, roster employee.Roster) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev := r.store.roster
	r.store.roster = roster.Clone()
	r.store.recordUndo(ctx, func() { r.store.roster = prev })
	return nil
}
