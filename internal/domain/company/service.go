package company

import (
	"context"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

// Directory is the registry of companies and manager codes.
type Directory interface {
	RegisterCompany(ctx context.Context, code, name, creatorEmail string) (Company, error)
	LookupCompany(ctx context.Context, code string) (Company, error)
	RegisterManagerCode(ctx context.Context, companyCode, name, code, createdBy string) (ManagerCode, error)
	LookupManagerCode(ctx context.Context, companyCode, code string) (ManagerCode, error)
}

type CompanyService interface {
	Directory
	ListManagerCodes(ctx context.Context, actor user.Actor) ([]ManagerCode, error)
	CreateManagerCode(ctx context.Context, actor user.Actor, req CreateManagerCodeRequest) (ManagerCode, error)
}
