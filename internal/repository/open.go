// Package repository selects the persistence backend configured by
// STORAGE_DRIVER and exposes the collections behind their domain contracts.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/certtracker/internal/config"
	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
	"github.com/cmlabs-hris/certtracker/internal/repository/memory"
	"github.com/cmlabs-hris/certtracker/internal/repository/postgresql"
)

type Set struct {
	Users         user.UserRepository
	Companies     company.CompanyRepository
	ManagerCodes  company.ManagerCodeRepository
	Roster        employee.RosterRepository
	RefreshTokens auth.RefreshTokenRepository
	Transactor    database.Transactor

	// DB is nil for the memory backend.
	DB *database.DB
}

func (s *Set) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// Open connects the configured backend. With migrate set, pending postgres
// migrations are applied before returning.
func Open(ctx context.Context, cfg *config.Config, migrate bool) (*Set, error) {
	switch cfg.App.StorageDriver {
	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage; data is lost on restart")
		return NewMemorySet(memory.NewStore()), nil

	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if migrate {
			if err := postgresql.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		return NewPostgresSet(db), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.App.StorageDriver)
	}
}

func NewMemorySet(store *memory.Store) *Set {
	return &Set{
		Users:         memory.NewUserRepository(store),
		Companies:     memory.NewCompanyRepository(store),
		ManagerCodes:  memory.NewManagerCodeRepository(store),
		Roster:        memory.NewRosterRepository(store),
		RefreshTokens: memory.NewRefreshTokenRepository(store),
		Transactor:    memory.NewTransactor(store),
	}
}

func NewPostgresSet(db *database.DB) *Set {
	return &Set{
		Users:         postgresql.NewUserRepository(db),
		Companies:     postgresql.NewCompanyRepository(db),
		ManagerCodes:  postgresql.NewManagerCodeRepository(db),
		Roster:        postgresql.NewRosterRepository(db),
		RefreshTokens: postgresql.NewRefreshTokenRepository(db),
		Transactor:    postgresql.NewTransactor(db),
		DB:            db,
	}
}
