package employee

import "context"

// RosterRepository loads and saves the whole roster snapshot. Save replaces
// what is stored; concurrent writers are last-write-wins.
type RosterRepository interface {
	Load(ctx context.Context) (Roster, error)
	Save(ctx context.Context, roster Roster) error
}
