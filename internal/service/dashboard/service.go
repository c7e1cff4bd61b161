package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/access"
	"github.com/cmlabs-hris/certtracker/internal/domain/dashboard"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

// upcomingLimit caps the feed excerpt embedded in the dashboard.
const upcomingLimit = 5

type DashboardServiceImpl struct {
	employee.RosterRepository
	now func() time.Time
}

func NewDashboardService(rosterRepository employee.RosterRepository, now func() time.Time) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		RosterRepository: rosterRepository,
		now:              now,
	}
}

// GetDashboard returns tier counts over the roster visible to actor. Any
// authenticated actor may call it; the scope alone limits what is counted.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, actor user.Actor) (dashboard.DashboardResponse, error) {
	roster, err := s.RosterRepository.Load(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	visible := access.VisibleEmployees(actor, roster)
	feed := notification.BuildFeed(visible, s.now())

	upcoming := feed.Items
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	return dashboard.DashboardResponse{
		Counts:        feed.Counts,
		EmployeeCount: len(visible),
		AsOf:          feed.AsOf,
		Upcoming:      upcoming,
	}, nil
}
