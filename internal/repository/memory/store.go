// Package memory keeps every collection in process memory. It backs the test
// suites and STORAGE_DRIVER=memory deployments; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
)

type refreshTokenRecord struct {
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Store holds the four collections plus issued refresh tokens.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         map[string]user.User
	companies     map[string]company.Company
	managerCodes  map[string]company.ManagerCode
	roster        employee.Roster
	refreshTokens map[string]refreshTokenRecord
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]user.User),
		companies:     make(map[string]company.Company),
		managerCodes:  make(map[string]company.ManagerCode),
		roster:        employee.Roster{},
		refreshTokens: make(map[string]refreshTokenRecord),
	}
}

// txLog collects the inverse of every write made inside one transaction.
type txLog struct {
	undo []func()
}

type txKey struct{}

// recordUndo registers the inverse of a write when ctx carries a
// transaction. The caller must hold s.mu.
func (s *Store) recordUndo(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(txKey{}).(*txLog); ok {
		log.undo = append(log.undo, undo)
	}
}

// rollback reverts only the writes recorded in log, newest first. Writes
// committed outside the transaction are left alone.
func (s *Store) rollback(log *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(log.undo) - 1; i >= 0; i-- {
		log.undo[i]()
	}
}

type transactorImpl struct {
	store *Store
}

// NewTransactor returns a database.Transactor that serialises transactions
// and reverts the transaction's own writes when fn fails.
func NewTransactor(s *Store) database.Transactor {
	return &transactorImpl{store: s}
}

func (t *transactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txLog); ok {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	log := &txLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		t.store.rollback(log)
		return err
	}
	return nil
}

func managerCodeKey(companyCode, code string) string {
	return companyCode + "/" + code
}
