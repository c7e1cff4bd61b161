package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/access"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/repository/memory"
	companyService "github.com/cmlabs-hris/certtracker/internal/service/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	directory := companyService.NewCompanyService(memory.NewCompanyRepository(store), memory.NewManagerCodeRepository(store))
	roster := memory.NewRosterRepository(store)
	today := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, SeedDemo(ctx, directory, roster, today))
	require.NoError(t, SeedDemo(ctx, directory, roster, today))

	loaded, err := roster.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, len(GetDemoEmployees()))

	_, err = directory.LookupManagerCode(ctx, user.DemoCompany, "ER-TEAM")
	assert.NoError(t, err)

	feed := notification.BuildFeed(access.VisibleEmployees(user.DemoActor(), loaded), today)
	assert.Equal(t, 1, feed.Counts.Expired)
	assert.Equal(t, 3, feed.Counts.Critical)
	assert.Equal(t, 3, feed.Counts.OK)
}
