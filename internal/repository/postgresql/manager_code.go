package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type managerCodeRepositoryImpl struct {
	db *database.DB
}

func NewManagerCodeRepository(db *database.DB) company.ManagerCodeRepository {
	return &managerCodeRepositoryImpl{db: db}
}

const managerCodeColumns = `id, name, code, company_code, created_by, created_at`

func scanManagerCode(row pgx.Row) (company.ManagerCode, error) {
	var mc company.ManagerCode
	err := row.Scan(&mc.ID, &mc.Name, &mc.Code, &mc.CompanyCode, &mc.CreatedBy, &mc.CreatedAt)
	return mc, err
}

// Get implements company.ManagerCodeRepository.
func (m *managerCodeRepositoryImpl) Get(ctx context.Context, companyCode, code string) (company.ManagerCode, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT ` + managerCodeColumns + ` FROM manager_codes WHERE company_code = $1 AND code = $2`
	mc, err := scanManagerCode(q.QueryRow(ctx, query, company.NormalizeCode(companyCode), company.NormalizeCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ManagerCode{}, company.ErrManagerCodeNotFound
		}
		return company.ManagerCode{}, fmt.Errorf("failed to get manager code: %w", err)
	}
	return mc, nil
}

// ListByCompany implements company.ManagerCodeRepository.
func (m *managerCodeRepositoryImpl) ListByCompany(ctx context.Context, companyCode string) ([]company.ManagerCode, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT ` + managerCodeColumns + ` FROM manager_codes WHERE company_code = $1 ORDER BY code`
	rows, err := q.Query(ctx, query, company.NormalizeCode(companyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list manager codes: %w", err)
	}
	defer rows.Close()

	codes := make([]company.ManagerCode, 0)
	for rows.Next() {
		mc, err := scanManagerCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager code: %w", err)
		}
		codes = append(codes, mc)
	}
	return codes, rows.Err()
}

// Create implements company.ManagerCodeRepository.
func (m *managerCodeRepositoryImpl) Create(ctx context.Context, mc company.ManagerCode) (company.ManagerCode, error) {
	q := GetQuerier(ctx, m.db)

	if mc.ID == "" {
		mc.ID = employee.NewID()
	}

	query := `
		INSERT INTO manager_codes (id, name, code, company_code, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + managerCodeColumns

	created, err := scanManagerCode(q.QueryRow(ctx, query,
		mc.ID,
		mc.Name,
		company.NormalizeCode(mc.Code),
		company.NormalizeCode(mc.CompanyCode),
		mc.CreatedBy,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return company.ManagerCode{}, company.ErrDuplicateManagerCode
		case isForeignKeyViolation(err):
			return company.ManagerCode{}, company.ErrInvalidCompanyCode
		}
		return company.ManagerCode{}, fmt.Errorf("failed to create manager code: %w", err)
	}
	return created, nil
}
