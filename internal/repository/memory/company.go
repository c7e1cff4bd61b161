package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
)

type companyRepositoryImpl struct {
	store *Store
}

func NewCompanyRepository(s *Store) company.CompanyRepository {
	return &companyRepositoryImpl{store: s}
}

// GetByCode implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByCode(ctx context.Context, code string) (company.Company, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.companies[company.NormalizeCode(code)]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	companies := make([]company.Company, 0, len(r.store.companies))
	for _, c := range r.store.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].Code < companies[j].Code })
	return companies, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newCompany.Code = company.NormalizeCode(newCompany.Code)
	if _, exists := r.store.companies[newCompany.Code]; exists {
		return company.Company{}, company.ErrDuplicateCompanyCode
	}
	if newCompany.ID == "" {
		newCompany.ID = employee.NewID()
	}
	if newCompany.CreatedAt.IsZero() {
		newCompany.CreatedAt = time.Now().UTC()
	}
	r.store.companies[newCompany.Code] = newCompany
	code := newCompany.Code
	r.store.recordUndo(ctx, func() { delete(r.store.companies, code) })
	return newCompany, nil
}

type managerCodeRepositoryImpl struct {
	store *Store
}

func NewManagerCodeRepository(s *Store) company.ManagerCodeRepository {
	return &managerCodeRepositoryImpl{store: s}
}

// Get implements company.ManagerCodeRepository.
func (r *managerCodeRepositoryImpl) Get(ctx context.Context, companyCode, code string) (company.ManagerCode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	mc, ok := r.store.managerCodes[managerCodeKey(company.NormalizeCode(companyCode), company.NormalizeCode(code))]
	if !ok {
		return company.ManagerCode{}, company.ErrManagerCodeNotFound
	}
	return mc, nil
}

// ListByCompany implements company.ManagerCodeRepository.
func (r *managerCodeRepositoryImpl) ListByCompany(ctx context.Context, companyCode string) ([]company.ManagerCode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	companyCode = company.NormalizeCode(companyCode)
	codes := make([]company.ManagerCode, 0)
	for _, mc := range r.store.managerCodes {
		if mc.CompanyCode == companyCode {
			codes = append(codes, mc)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
	return codes, nil
}

// Create implements company.ManagerCodeRepository.
func (r *managerCodeRepositoryImpl) Create(ctx context.Context, mc company.ManagerCode) (company.ManagerCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	mc.CompanyCode = company.NormalizeCode(mc.CompanyCode)
	mc.Code = company.NormalizeCode(mc.Code)
	key := managerCodeKey(mc.CompanyCode, mc.Code)
	if _, exists := r.store.managerCodes[key]; exists {
		return company.ManagerCode{}, company.ErrDuplicateManagerCode
	}
	if mc.ID == "" {
		mc.ID = employee.NewID()
	}
	if mc.CreatedAt.IsZero() {
		mc.CreatedAt = time.Now().UTC()
	}
	r.store.managerCodes[key] = mc
	r.store.recordUndo(ctx, func() { delete(r.store.managerCodes, key) })
	return mc, nil
}
