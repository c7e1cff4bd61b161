package dashboard

import (
	"context"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, actor user.Actor) (DashboardResponse, error)
}
