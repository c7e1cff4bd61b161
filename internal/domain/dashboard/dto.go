package dashboard

import (
	"github.com/cmlabs-hris/certtracker/internal/domain/expiry"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
)

// DashboardResponse aggregates the actor's visible scope only. Upcoming
// holds the most urgent entries of the notification feed.
type DashboardResponse struct {
	Counts        expiry.Counts               `json:"counts"`
	EmployeeCount int                         `json:"employee_count"`
	AsOf          string                      `json:"as_of"` // Format: "YYYY-MM-DD"
	Upcoming      []notification.Notification `json:"upcoming"`
}
