package employee

import (
	"context"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

type RosterService interface {
	ListVisible(ctx context.Context, actor user.Actor) (Roster, error)
	AddEmployee(ctx context.Context, actor user.Actor, req CreateEmployeeRequest) (Employee, error)
	DeleteEmployee(ctx context.Context, actor user.Actor, employeeID string) error
	AddCertification(ctx context.Context, actor user.Actor, employeeID string, req CreateCertificationRequest) (Certification, error)
	EditCertification(ctx context.Context, actor user.Actor, certID string, req UpdateCertificationRequest) (Certification, error)
	DeleteCertification(ctx context.Context, actor user.Actor, employeeID, certID string) error
}
