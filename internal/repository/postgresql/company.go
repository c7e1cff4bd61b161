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

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByCode implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByCode(ctx context.Context, code string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, code, name, created_by, created_at FROM companies WHERE code = $1`

	var data company.Company
	err := q.QueryRow(ctx, query, company.NormalizeCode(code)).Scan(
		&data.ID,
		&data.Code,
		&data.Name,
		&data.CreatedBy,
		&data.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by code %s: %w", code, err)
	}
	return data, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT id, code, name, created_by, created_at FROM companies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		var data company.Company
		if err := rows.Scan(&data.ID, &data.Code, &data.Name, &data.CreatedBy, &data.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, data)
	}
	return companies, rows.Err()
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	if newCompany.ID == "" {
		newCompany.ID = employee.NewID()
	}

	query := `
		INSERT INTO companies (id, code, name, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, created_by, created_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query,
		newCompany.ID,
		company.NormalizeCode(newCompany.Code),
		newCompany.Name,
		newCompany.CreatedBy,
	).Scan(&created.ID, &created.Code, &created.Name, &created.CreatedBy, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return company.Company{}, company.ErrDuplicateCompanyCode
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}
