package notification

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/expiry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildFeed(t *testing.T) {
	today := day(2025, time.June, 1)
	roster := employee.Roster{
		{
			ID:   "e1",
			Name: "Sarah Johnson",
			Certifications: []employee.Certification{
				{ID: "c1", Name: "BLS", Expiry: day(2025, time.June, 11)},
				{ID: "c2", Name: "ACLS", Expiry: day(2026, time.June, 1)},
			},
		},
		{
			ID:   "e2",
			Name: "Bob Stone",
			Certifications: []employee.Certification{
				{ID: "c3", Name: "Forklift", Expiry: day(2025, time.May, 29)},
				{ID: "c4", Name: "First Aid", Expiry: day(2025, time.June, 1)},
			},
		},
	}

	feed := BuildFeed(roster, today)

	assert.Equal(t, expiry.Counts{Expired: 1, Critical: 2, OK: 1, Total: 4}, feed.Counts)
	assert.Equal(t, "2025-06-01", feed.AsOf)
	require.Len(t, feed.Items, 3)

	assert.Equal(t, "c3", feed.Items[0].CertificationID)
	assert.Equal(t, expiry.TierExpired, feed.Items[0].Tier)
	assert.Equal(t, -3, feed.Items[0].DaysRemaining)
	assert.Equal(t, "Forklift for Bob Stone: Expired 3 days ago", feed.Items[0].Message)

	assert.Equal(t, "c4", feed.Items[1].CertificationID)
	assert.Equal(t, 0, feed.Items[1].DaysRemaining)
	assert.Equal(t, expiry.TierCritical, feed.Items[1].Tier)

	assert.Equal(t, "c1", feed.Items[2].CertificationID)
	assert.Equal(t, "2025-06-11", feed.Items[2].Expiry)
	assert.Equal(t, "BLS for Sarah Johnson expires in 10 days", feed.Items[2].Message)
}

func TestBuildFeed_Empty(t *testing.T) {
	feed := BuildFeed(nil, day(2025, time.June, 1))
	assert.NotNil(t, feed.Items)
	assert.Empty(t, feed.Items)
	assert.Zero(t, feed.Counts.Total)
}
