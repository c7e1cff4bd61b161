package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
)

type refreshTokenRepositoryImpl struct {
	store *Store
}

func NewRefreshTokenRepository(s *Store) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{store: s}
}

func (r *refreshTokenRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.refreshTokens[token] = refreshTokenRecord{
		UserID:    userID,
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}
	r.store.recordUndo(ctx, func() { delete(r.store.refreshTokens, token) })
	return nil
}

// IsRefreshTokenRevoked reports unknown and expired tokens as revoked.
func (r *refreshTokenRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.refreshTokens[token]
	if !ok {
		return true, nil
	}
	return rec.RevokedAt != nil || !rec.ExpiresAt.After(time.Now()), nil
}

func (r *refreshTokenRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.refreshTokens[token]
	if !ok || rec.RevokedAt != nil {
		return nil
	}
	prev := rec
	now := time.Now().UTC()
	rec.RevokedAt = &now
	r.store.refreshTokens[token] = rec
	r.store.recordUndo(ctx, func() { r.store.refreshTokens[token] = prev })
	return nil
}
