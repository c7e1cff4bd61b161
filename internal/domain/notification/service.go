package notification

import (
	"context"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/sse"
)

// Service builds expiry feeds and pushes them to live subscribers.
type Service interface {
	GetFeed(ctx context.Context, actor user.Actor) (Feed, error)

	// PublishDigests sends the current feed to every user holding an open
	// stream and reports how many digests were delivered.
	PublishDigests(ctx context.Context) (int, error)

	// EmailDigests mails the current feed to admins and managers with
	// something to act on and reports how many emails were sent.
	EmailDigests(ctx context.Context) (int, error)

	// Subscribe attaches a stream for userID and pushes an initial digest.
	Subscribe(ctx context.Context, userID string) (<-chan sse.Event, func(), error)
}
