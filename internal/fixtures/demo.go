// Package fixtures holds the sample data loaded into demo deployments.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

const demoCreator = "demo@certtracker.local"

func strPtr(s string) *string { return &s }

// DemoTeam is a manager code seeded into the demo company.
type DemoTeam struct {
	Name string
	Code string
}

// DemoCertification expires ExpiresInDays after the seeding date.
type DemoCertification struct {
	Name          string
	Issuer        string
	LicenseNumber string
	ExpiresInDays int
}

type DemoEmployee struct {
	Name           string
	JobTitle       string
	Email          string
	TeamCode       string
	Certifications []DemoCertification
}

// ==========================================
// DEFAULT DEMO DATA
// ==========================================

func GetDemoTeams() []DemoTeam {
	return []DemoTeam{
		{Name: "Emergency Department", Code: "ER-TEAM"},
		{Name: "Facilities", Code: "FACILITIES"},
	}
}

// GetDemoEmployees covers every tier: expired, critical, boundary and ok.
func GetDemoEmployees() []DemoEmployee {
	return []DemoEmployee{
		{
			Name: "Sarah Johnson", JobTitle: "Registered Nurse", Email: "sarah.johnson@demo.test", TeamCode: "ER-TEAM",
			Certifications: []DemoCertification{
				{Name: "Basic Life Support", Issuer: "American Heart Association", LicenseNumber: "BLS-10442", ExpiresInDays: 10},
				{Name: "Registered Nurse License", Issuer: "State Board of Nursing", LicenseNumber: "RN-558120", ExpiresInDays: 400},
			},
		},
		{
			Name: "Marcus Lee", JobTitle: "Paramedic", Email: "marcus.lee@demo.test", TeamCode: "ER-TEAM",
			Certifications: []DemoCertification{
				{Name: "Advanced Cardiac Life Support", Issuer: "American Heart Association", ExpiresInDays: -5},
				{Name: "EMT-P", Issuer: "NREMT", LicenseNumber: "P-88213", ExpiresInDays: 30},
			},
		},
		{
			Name: "Priya Patel", JobTitle: "Electrician", Email: "priya.patel@demo.test", TeamCode: "FACILITIES",
			Certifications: []DemoCertification{
				{Name: "Journeyman Electrician", Issuer: "State Licensing Board", LicenseNumber: "JE-4471", ExpiresInDays: 31},
				{Name: "OSHA 30", Issuer: "OSHA", ExpiresInDays: 0},
			},
		},
		{
			Name: "Tom Becker", JobTitle: "Forklift Operator", TeamCode: "FACILITIES",
			Certifications: []DemoCertification{
				{Name: "Forklift Operator", Issuer: "National Safety Council", ExpiresInDays: 180},
			},
		},
	}
}

// ==========================================
// SEEDING
// ==========================================

// SeedDemo makes sure the demo company and its teams exist and loads the
// sample roster when the demo company has no employees yet. It is safe to
// call on every start.
func SeedDemo(ctx context.Context, directory company.Directory, rosterRepo employee.RosterRepository, today time.Time) error {
	if _, err := directory.RegisterCompany(ctx, user.DemoCompany, "Demo Company", demoCreator); err != nil &&
		!errors.Is(err, company.ErrDuplicateCompanyCode) {
		return fmt.Errorf("failed to seed demo company: %w", err)
	}
	for _, team := range GetDemoTeams() {
		if _, err := directory.RegisterManagerCode(ctx, user.DemoCompany, team.Name, team.Code, demoCreator); err != nil &&
			!errors.Is(err, company.ErrDuplicateManagerCode) {
			return fmt.Errorf("failed to seed manager code %s: %w", team.Code, err)
		}
	}

	roster, err := rosterRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	for _, e := range roster {
		if e.CompanyCode == user.DemoCompany {
			slog.Debug("Demo roster already seeded")
			return nil
		}
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, de := range GetDemoEmployees() {
		var created employee.Employee
		roster, created, err = roster.AddEmployee(employee.EmployeeDraft{
			Name:        de.Name,
			JobTitle:    de.JobTitle,
			Email:       de.Email,
			CompanyCode: user.DemoCompany,
			ManagerCode: strPtr(de.TeamCode),
		}, today)
		if err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", de.Name, err)
		}
		for _, dc := range de.Certifications {
			roster, _, err = roster.AddCertification(created.ID, employee.CertificationDraft{
				Name:          dc.Name,
				Issuer:        dc.Issuer,
				LicenseNumber: dc.LicenseNumber,
				Expiry:        today.AddDate(0, 0, dc.ExpiresInDays),
			})
			if err != nil {
				return fmt.Errorf("failed to seed certification %s: %w", dc.Name, err)
			}
		}
	}

	if err := rosterRepo.Save(ctx, roster); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	slog.Info("Demo data seeded", "company_code", user.DemoCompany, "employees", len(GetDemoEmployees()))
	return nil
}
