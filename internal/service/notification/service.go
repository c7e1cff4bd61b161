package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/access"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/email"
	"github.com/cmlabs-hris/certtracker/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

// Config holds notification service configuration
type Config struct {
	Concurrency int              // default: 8
	Now         func() time.Time // default: time.Now

	// Mailer is nil when email digests are disabled.
	Mailer email.Mailer
	// Directory resolves company names for email digests. Optional.
	Directory company.Directory
}

type service struct {
	users  user.UserRepository
	roster employee.RosterRepository
	hub    *sse.Hub
	config Config
}

func NewNotificationService(users user.UserRepository, roster employee.RosterRepository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		users:  users,
		roster: roster,
		hub:    hub,
		config: cfg,
	}
}

// GetFeed implements notification.Service.
func (s *service) GetFeed(ctx context.Context, actor user.Actor) (notification.Feed, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return notification.Feed{}, fmt.Errorf("failed to load roster: %w", err)
	}
	return notification.BuildFeed(access.VisibleEmployees(actor, roster), s.config.Now()), nil
}

// PublishDigests implements notification.Service. The roster is loaded once
// and each subscriber's feed is built concurrently. Subscribers whose account
// no longer exists are skipped.
func (s *service) PublishDigests(ctx context.Context) (int, error) {
	userIDs := s.hub.UserIDs()
	if len(userIDs) == 0 {
		return 0, nil
	}

	roster, err := s.roster.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster: %w", err)
	}
	today := s.config.Now()

	var delivered atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			actor, err := s.actorFor(gCtx, userID)
			if errors.Is(err, user.ErrUserNotFound) {
				slog.Warn("Skipping digest for unknown user", "user_id", userID)
				return nil
			}
			if err != nil {
				return err
			}

			feed := notification.BuildFeed(access.VisibleEmployees(actor, roster), today)
			n := s.hub.Publish(userID, sse.Event{Event: notification.EventExpiryDigest, Data: feed})
			delivered.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(delivered.Load()), fmt.Errorf("failed to publish digests: %w", err)
	}

	slog.Info("Expiry digests published", "recipients", len(userIDs), "delivered", delivered.Load())
	return int(delivered.Load()), nil
}

// EmailDigests implements notification.Service. Admins and managers with at
// least one non-ok certification in scope get one email each. A failed send
// is logged and does not stop the remaining recipients.
func (s *service) EmailDigests(ctx context.Context) (int, error) {
	if s.config.Mailer == nil {
		return 0, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster: %w", err)
	}
	today := s.config.Now()

	var sent atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for _, u := range users {
		if u.Role == user.RoleEmployee || u.Email == "" {
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			feed := notification.BuildFeed(access.VisibleEmployees(u.Actor(), roster), today)
			if len(feed.Items) == 0 {
				return nil
			}
			if err := s.config.Mailer.SendExpiryDigest(u.Email, u.Name, s.companyName(gCtx, u.CompanyCode), feed); err != nil {
				slog.Error("Failed to email expiry digest", "user_id", u.ID, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(sent.Load()), fmt.Errorf("failed to email digests: %w", err)
	}

	slog.Info("Expiry digests emailed", "sent", sent.Load())
	return int(sent.Load()), nil
}

func (s *service) companyName(ctx context.Context, code string) string {
	if s.config.Directory == nil {
		return code
	}
	c, err := s.config.Directory.LookupCompany(ctx, code)
	if err != nil || c.Name == "" {
		return code
	}
	return c.Name
}

// Subscribe implements notification.Service.
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func(), error) {
	actor, err := s.actorFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	feed, err := s.GetFeed(ctx, actor)
	if err != nil {
		return nil, nil, err
	}

	ch, cleanup := s.hub.Subscribe(userID)
	// The channel is fresh and buffered, so the first send cannot block.
	ch <- sse.Event{UserID: userID, Event: notification.EventExpiryDigest, Data: feed}
	return ch, cleanup, nil
}

func (s *service) actorFor(ctx context.Context, userID string) (user.Actor, error) {
	if userID == user.DemoActorID {
		return user.DemoActor(), nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Actor{}, err
		}
		return user.Actor{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u.Actor(), nil
}
