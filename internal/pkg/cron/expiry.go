package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
)

type ExpiryJobs struct {
	notificationSvc notification.Service
	interval        time.Duration
	emailInterval   time.Duration
}

// NewExpiryJobs schedules stream digests every interval and email digests
// every emailInterval. A zero emailInterval leaves email off.
func NewExpiryJobs(notificationSvc notification.Service, interval, emailInterval time.Duration) *ExpiryJobs {
	return &ExpiryJobs{
		notificationSvc: notificationSvc,
		interval:        interval,
		emailInterval:   emailInterval,
	}
}

func (j *ExpiryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("publish_expiry_digests", j.interval, j.PublishExpiryDigests)
	scheduler.AddJob("email_expiry_digests", j.emailInterval, j.EmailExpiryDigests)
}

// PublishExpiryDigests pushes the current expiry feed to every open stream.
func (j *ExpiryJobs) PublishExpiryDigests(ctx context.Context) error {
	_, err := j.notificationSvc.PublishDigests(ctx)
	return err
}

// EmailExpiryDigests mails the current expiry feed to admins and managers.
func (j *ExpiryJobs) EmailExpiryDigests(ctx context.Context) error {
	_, err := j.notificationSvc.EmailDigests(ctx)
	return err
}
