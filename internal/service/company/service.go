package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	managerCodes company.ManagerCodeRepository
}

func NewCompanyService(companyRepository company.CompanyRepository, managerCodeRepository company.ManagerCodeRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		managerCodes:      managerCodeRepository,
	}
}

// RegisterCompany implements company.Directory.
func (c *CompanyServiceImpl) RegisterCompany(ctx context.Context, code, name, creatorEmail string) (company.Company, error) {
	code = company.NormalizeCode(code)
	if code == "" {
		return company.Company{}, validator.Required("company_code")
	}
	if validator.IsEmpty(name) {
		name = code
	}

	_, err := c.CompanyRepository.GetByCode(ctx, code)
	switch {
	case err == nil:
		return company.Company{}, company.ErrDuplicateCompanyCode
	case !errors.Is(err, company.ErrCompanyNotFound):
		return company.Company{}, fmt.Errorf("failed to check company code: %w", err)
	}

	created, err := c.CompanyRepository.Create(ctx, company.Company{
		Code:      code,
		Name:      name,
		CreatedBy: creatorEmail,
	})
	if err != nil {
		if errors.Is(err, company.ErrDuplicateCompanyCode) {
			return company.Company{}, err
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("Company registered", "company_code", created.Code, "created_by", creatorEmail)
	return created, nil
}

// LookupCompany implements company.Directory.
func (c *CompanyServiceImpl) LookupCompany(ctx context.Context, code string) (company.Company, error) {
	code = company.NormalizeCode(code)
	if code == "" {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c.CompanyRepository.GetByCode(ctx, code)
}

// RegisterManagerCode implements company.Directory. Callers are responsible
// for the admin check.
func (c *CompanyServiceImpl) RegisterManagerCode(ctx context.Context, companyCode, name, code, createdBy string) (company.ManagerCode, error) {
	companyCode = company.NormalizeCode(companyCode)
	code = company.NormalizeCode(code)
	if code == "" {
		return company.ManagerCode{}, validator.Required("code")
	}
	if validator.IsEmpty(name) {
		return company.ManagerCode{}, validator.Required("name")
	}

	if _, err := c.LookupCompany(ctx, companyCode); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ManagerCode{}, company.ErrInvalidCompanyCode
		}
		return company.ManagerCode{}, fmt.Errorf("failed to get company: %w", err)
	}

	_, err := c.managerCodes.Get(ctx, companyCode, code)
	switch {
	case err == nil:
		return company.ManagerCode{}, company.ErrDuplicateManagerCode
	case !errors.Is(err, company.ErrManagerCodeNotFound):
		return company.ManagerCode{}, fmt.Errorf("failed to check manager code: %w", err)
	}

	created, err := c.managerCodes.Create(ctx, company.ManagerCode{
		Name:        name,
		Code:        code,
		CompanyCode: companyCode,
		CreatedBy:   createdBy,
	})
	if err != nil {
		if errors.Is(err, company.ErrDuplicateManagerCode) {
			return company.ManagerCode{}, err
		}
		return company.ManagerCode{}, fmt.Errorf("failed to create manager code: %w", err)
	}

	slog.Info("Manager code registered", "company_code", companyCode, "code", code)
	return created, nil
}

// LookupManagerCode implements company.Directory.
func (c *CompanyServiceImpl) LookupManagerCode(ctx context.Context, companyCode, code string) (company.ManagerCode, error) {
	companyCode = company.NormalizeCode(companyCode)
	code = company.NormalizeCode(code)
	if companyCode == "" || code == "" {
		return company.ManagerCode{}, company.ErrManagerCodeNotFound
	}
	return c.managerCodes.Get(ctx, companyCode, code)
}

// ListManagerCodes implements company.CompanyService.
func (c *CompanyServiceImpl) ListManagerCodes(ctx context.Context, actor user.Actor) ([]company.ManagerCode, error) {
	if !user.IsAdmin(actor) {
		return nil, user.ErrPermissionDenied
	}
	codes, err := c.managerCodes.ListByCompany(ctx, actor.CompanyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list manager codes: %w", err)
	}
	return codes, nil
}

// CreateManagerCode implements company.CompanyService.
func (c *CompanyServiceImpl) CreateManagerCode(ctx context.Context, actor user.Actor, req company.CreateManagerCodeRequest) (company.ManagerCode, error) {
	if !user.IsAdmin(actor) {
		return company.ManagerCode{}, user.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return company.ManagerCode{}, err
	}
	return c.RegisterManagerCode(ctx, actor.CompanyCode, req.Name, req.Code, actor.Email)
}
