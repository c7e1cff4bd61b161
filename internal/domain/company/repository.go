package company

import "context"

// CompanyRepository stores companies keyed by normalized code.
type CompanyRepository interface {
	GetByCode(ctx context.Context, code string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
}

// ManagerCodeRepository stores manager codes keyed by (company code, code).
type ManagerCodeRepository interface {
	Get(ctx context.Context, companyCode, code string) (ManagerCode, error)
	ListByCompany(ctx context.Context, companyCode string) ([]ManagerCode, error)
	Create(ctx context.Context, newCode ManagerCode) (ManagerCode, error)
}
