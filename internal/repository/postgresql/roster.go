package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rosterRepositoryImpl struct {
	db *database.DB
	database.Transactor
}

func NewRosterRepository(db *database.DB) employee.RosterRepository {
	return &rosterRepositoryImpl{db: db, Transactor: NewTransactor(db)}
}

// Load implements employee.RosterRepository.
func (r *rosterRepositoryImpl) Load(ctx context.Context) (employee.Roster, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, job_title, email, company_code, manager_code, manager_id, created_at
		FROM employees
		ORDER BY sort_order, created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	roster := employee.Roster{}
	index := make(map[string]int)
	for rows.Next() {
		e := employee.Employee{Certifications: []employee.Certification{}}
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.JobTitle,
			&e.Email,
			&e.CompanyCode,
			&e.ManagerCode,
			&e.ManagerID,
			&e.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		index[e.ID] = len(roster)
		roster = append(roster, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	certRows, err := q.Query(ctx, `
		SELECT id, employee_id, name, initial_date, expiry, issuer, license_number
		FROM certifications
		ORDER BY employee_id, sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load certifications: %w", err)
	}
	defer certRows.Close()

	for certRows.Next() {
		var (
			c          employee.Certification
			employeeID string
		)
		if err := certRows.Scan(
			&c.ID,
			&employeeID,
			&c.Name,
			&c.InitialDate,
			&c.Expiry,
			&c.Issuer,
			&c.LicenseNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		i, ok := index[employeeID]
		if !ok {
			continue
		}
		roster[i].Certifications = append(roster[i].Certifications, c)
	}
	if err := certRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load certifications: %w", err)
	}

	return roster, nil
}

// Save implements employee.RosterRepository. The stored roster is replaced
// inside one transaction: rows missing from roster are deleted, the rest are
// upserted with their slice position.
func (r *rosterRepositoryImpl) Save(ctx context.Context, roster employee.Roster) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		employeeIDs := make([]string, 0, len(roster))
		certIDs := make([]string, 0)
		for _, e := range roster {
			employeeIDs = append(employeeIDs, e.ID)
			for _, c := range e.Certifications {
				certIDs = append(certIDs, c.ID)
			}
		}

		if _, err := q.Exec(ctx, `DELETE FROM employees WHERE NOT (id::text = ANY($1::text[]))`, employeeIDs); err != nil {
			return fmt.Errorf("failed to delete removed employees: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM certifications WHERE NOT (id::text = ANY($1::text[]))`, certIDs); err != nil {
			return fmt.Errorf("failed to delete removed certifications: %w", err)
		}

		batch := &pgx.Batch{}
		for i, e := range roster {
			createdAt := e.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now().UTC()
			}
			batch.Queue(`
				INSERT INTO employees (id, sort_order, name, job_title, email, company_code, manager_code, manager_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (id) DO UPDATE SET
					sort_order = EXCLUDED.sort_order,
					name = EXCLUDED.name,
					job_title = EXCLUDED.job_title,
					email = EXCLUDED.email,
					company_code = EXCLUDED.company_code,
					manager_code = EXCLUDED.manager_code,
					manager_id = EXCLUDED.manager_id
			`, e.ID, i, e.Name, e.JobTitle, e.Email, e.CompanyCode, e.ManagerCode, e.ManagerID, createdAt)

			for j, c := range e.Certifications {
				batch.Queue(`
					INSERT INTO certifications (id, employee_id, sort_order, name, initial_date, expiry, issuer, license_number)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
					ON CONFLICT (id) DO UPDATE SET
						employee_id = EXCLUDED.employee_id,
						sort_order = EXCLUDED.sort_order,
						name = EXCLUDED.name,
						initial_date = EXCLUDED.initial_date,
						expiry = EXCLUDED.expiry,
						issuer = EXCLUDED.issuer,
						license_number = EXCLUDED.license_number
				`, c.ID, e.ID, j, c.Name, c.InitialDate, c.Expiry, c.Issuer, c.LicenseNumber)
			}
		}

		if batch.Len() == 0 {
			return nil
		}
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert roster: %w", err)
		}
		return nil
	})
}
