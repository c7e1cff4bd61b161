package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/database"
	"github.com/cmlabs-hris/certtracker/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))

	_, err = db.Exec(ctx, `TRUNCATE TABLE refresh_tokens, certifications, employees, users, manager_codes, companies CASCADE`)
	require.NoError(t, err)
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDirectoryAndUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	companies := postgresql.NewCompanyRepository(db)
	codes := postgresql.NewManagerCodeRepository(db)
	users := postgresql.NewUserRepository(db)

	acme, err := companies.Create(ctx, company.Company{Code: "acme", Name: "Acme", CreatedBy: "sarah@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "ACME", acme.Code)

	_, err = companies.Create(ctx, company.Company{Code: "ACME", Name: "Again"})
	assert.ErrorIs(t, err, company.ErrDuplicateCompanyCode)

	_, err = codes.Create(ctx, company.ManagerCode{Name: "Team A", Code: "team-a", CompanyCode: "ACME"})
	require.NoError(t, err)
	_, err = codes.Create(ctx, company.ManagerCode{Name: "Team A", Code: "TEAM-A", CompanyCode: "acme"})
	assert.ErrorIs(t, err, company.ErrDuplicateManagerCode)
	_, err = codes.Create(ctx, company.ManagerCode{Name: "X", Code: "X", CompanyCode: "NOPE"})
	assert.ErrorIs(t, err, company.ErrInvalidCompanyCode)

	mc, err := codes.Get(ctx, "Acme", "Team-A")
	require.NoError(t, err)
	assert.Equal(t, "TEAM-A", mc.Code)

	u, err := users.Create(ctx, user.User{Email: "sarah@acme.test", Name: "Sarah", PasswordHash: "x", Role: user.RoleAdmin, CompanyCode: "ACME"})
	require.NoError(t, err)

	_, err = users.Create(ctx, user.User{Email: "sarah@acme.test", Name: "Dup", PasswordHash: "x", Role: user.RoleAdmin, CompanyCode: "ACME"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	got, err := users.GetByEmail(ctx, "sarah@acme.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByEmail(ctx, "SARAH@acme.test")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	code := "TEAM-A"
	require.NoError(t, users.UpdateRole(ctx, u.ID, user.RoleManager, &code))
	got, err = users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, got.Role)
	require.NotNil(t, got.ManagerCode)
	assert.Equal(t, "TEAM-A", *got.ManagerCode)

	tokens := postgresql.NewRefreshTokenRepository(db)
	require.NoError(t, tokens.CreateRefreshToken(ctx, u.ID, "tok", time.Now().Add(time.Hour).Unix(), auth.SessionTrackingRequest{UserAgent: "test"}))
	revoked, err := tokens.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
	require.NoError(t, tokens.RevokeRefreshToken(ctx, "tok"))
	revoked, err = tokens.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRosterRepository_SaveReplacesSnapshot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewRosterRepository(db)

	initial := date(2023, time.March, 1)
	r, sarah, err := employee.Roster{}.AddEmployee(employee.EmployeeDraft{Name: "Sarah Johnson", JobTitle: "Nurse", CompanyCode: "ACME"}, time.Now().UTC())
	require.NoError(t, err)
	r, bls, err := r.AddCertification(sarah.ID, employee.CertificationDraft{Name: "BLS", InitialDate: &initial, Expiry: date(2025, time.June, 10)})
	require.NoError(t, err)
	r, _, err = r.AddCertification(sarah.ID, employee.CertificationDraft{Name: "ACLS", Expiry: date(2026, time.January, 1)})
	require.NoError(t, err)
	r, tom, err := r.AddEmployee(employee.EmployeeDraft{Name: "Tom", JobTitle: "Tech", CompanyCode: "ACME"}, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, r))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Sarah Johnson", loaded[0].Name)
	require.Len(t, loaded[0].Certifications, 2)
	assert.Equal(t, "BLS", loaded[0].Certifications[0].Name)
	assert.True(t, loaded[0].Certifications[0].Expiry.Equal(date(2025, time.June, 10)))
	require.NotNil(t, loaded[0].Certifications[0].InitialDate)
	assert.Nil(t, loaded[0].Certifications[1].InitialDate)

	r, err = r.DeleteCertification(sarah.ID, bls.ID)
	require.NoError(t, err)
	r, err = r.DeleteEmployee(tom.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Certifications, 1)
	assert.Equal(t, "ACLS", loaded[0].Certifications[0].Name)

	require.NoError(t, repo.Save(ctx, employee.Roster{}))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
