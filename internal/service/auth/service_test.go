package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
	"github.com/cmlabs-hris/certtracker/internal/repository/memory"
	companyService "github.com/cmlabs-hris/certtracker/internal/service/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type authFixture struct {
	svc       auth.AuthService
	directory company.CompanyService
	users     user.UserRepository
	jwt       jwt.Service
}

func newAuthFixture(t *testing.T, demoEnabled bool) authFixture {
	t.Helper()
	store := memory.NewStore()
	directory := companyService.NewCompanyService(memory.NewCompanyRepository(store), memory.NewManagerCodeRepository(store))
	users := memory.NewUserRepository(store)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	svc := NewAuthService(memory.NewTransactor(store), users, directory, jwtService, memory.NewRefreshTokenRepository(store), demoEnabled)
	return authFixture{svc: svc, directory: directory, users: users, jwt: jwtService}
}

func strPtr(s string) *string { return &s }

func foundAcme(t *testing.T, f authFixture) auth.TokenResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email:              "sarah@acme.test",
		Password:           "password123",
		Name:               "Sarah Admin",
		CompanyCode:        "acme",
		CompanyName:        "Acme Corp",
		FoundingNewCompany: true,
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	return resp
}

func TestRegister_FoundingCompany(t *testing.T) {
	f := newAuthFixture(t, false)
	resp := foundAcme(t, f)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin", resp.Actor.Role)
	assert.Equal(t, "ACME", resp.Actor.CompanyCode)
	assert.True(t, resp.Actor.IsAdmin)

	c, err := f.directory.LookupCompany(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "sarah@acme.test", c.CreatedBy)

	stored, err := f.users.GetByEmail(context.Background(), "sarah@acme.test")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestRegister_FoundingIgnoresRequestedRole(t *testing.T) {
	f := newAuthFixture(t, false)
	resp, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "sarah@acme.test", Password: "pw", Name: "Sarah",
		Role: "employee", CompanyCode: "ACME", FoundingNewCompany: true,
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Actor.Role)
}

func TestRegister_DuplicateCompanyCodeDiffersOnlyByCase(t *testing.T) {
	f := newAuthFixture(t, false)
	foundAcme(t, f)

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "other@acme.test", Password: "pw", Name: "Other",
		CompanyCode: "ACME", FoundingNewCompany: true,
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, company.ErrDuplicateCompanyCode)
}

func TestRegister_ValidationOrder(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, false)
	foundAcme(t, f)
	_, err := f.directory.RegisterManagerCode(ctx, "ACME", "Team A", "TEAM-A", "sarah@acme.test")
	require.NoError(t, err)

	tests := []struct {
		name string
		req  auth.RegisterRequest
		want error
	}{
		{
			name: "missing email",
			req:  auth.RegisterRequest{Password: "pw", Name: "N", CompanyCode: "ACME", ManagerCode: strPtr("TEAM-A")},
			want: validator.ErrMissingField,
		},
		{
			name: "missing password wins over unknown company",
			req:  auth.RegisterRequest{Email: "x@acme.test", Name: "N", CompanyCode: "NOPE"},
			want: validator.ErrMissingField,
		},
		{
			name: "missing name",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", CompanyCode: "ACME"},
			want: validator.ErrMissingField,
		},
		{
			name: "founding without company code",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", FoundingNewCompany: true},
			want: validator.ErrMissingField,
		},
		{
			name: "join unknown company",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", Role: "employee", CompanyCode: "initech", ManagerCode: strPtr("TEAM-A")},
			want: company.ErrInvalidCompanyCode,
		},
		{
			name: "join as manager without manager code",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", Role: "manager", CompanyCode: "acme"},
			want: validator.ErrMissingField,
		},
		{
			name: "join as employee with blank manager code",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", Role: "employee", CompanyCode: "acme", ManagerCode: strPtr("  ")},
			want: validator.ErrMissingField,
		},
		{
			name: "join with unknown manager code",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", Role: "employee", CompanyCode: "acme", ManagerCode: strPtr("TEAM-B")},
			want: company.ErrInvalidManagerCode,
		},
		{
			name: "join as admin",
			req:  auth.RegisterRequest{Email: "x@acme.test", Password: "pw", Name: "N", Role: "admin", CompanyCode: "acme", ManagerCode: strPtr("TEAM-A")},
			want: user.ErrInvalidRole,
		},
		{
			name: "duplicate email is checked last",
			req:  auth.RegisterRequest{Email: "sarah@acme.test", Password: "pw", Name: "N", Role: "employee", CompanyCode: "acme", ManagerCode: strPtr("team-a")},
			want: user.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tt.req, auth.SessionTrackingRequest{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_JoinNeverWritesDirectory(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, false)
	foundAcme(t, f)
	_, err := f.directory.RegisterManagerCode(ctx, "ACME", "Team A", "TEAM-A", "sarah@acme.test")
	require.NoError(t, err)

	resp, err := f.svc.Register(ctx, auth.RegisterRequest{
		Email: "lead@acme.test", Password: "pw", Name: "Lead",
		Role: "manager", CompanyCode: "acme", ManagerCode: strPtr("team-a"),
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Actor.Role)
	assert.Equal(t, "ACME", resp.Actor.CompanyCode)
	require.NotNil(t, resp.Actor.ManagerCode)
	assert.Equal(t, "TEAM-A", *resp.Actor.ManagerCode)

	admin := user.Actor{Role: user.RoleAdmin, CompanyCode: "ACME"}
	codes, err := f.directory.ListManagerCodes(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, codes, 1)
}

func TestRegister_DuplicateEmailRollsBackFoundedCompany(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, false)
	foundAcme(t, f)

	_, err := f.svc.Register(ctx, auth.RegisterRequest{
		Email: "sarah@acme.test", Password: "pw", Name: "Sarah",
		CompanyCode: "globex", FoundingNewCompany: true,
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)

	_, err = f.directory.LookupCompany(ctx, "GLOBEX")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	f := newAuthFixture(t, false)
	foundAcme(t, f)

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "Sarah@acme.test", Password: "pw", Name: "Sarah",
		CompanyCode: "globex", FoundingNewCompany: true,
	}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, false)
	foundAcme(t, f)

	actor, err := f.svc.Authenticate(ctx, "sarah@acme.test", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, actor.Role)
	assert.Equal(t, "ACME", actor.CompanyCode)

	_, err = f.svc.Authenticate(ctx, "sarah@acme.test", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Authenticate(ctx, "nobody@acme.test", "password123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, false)
	foundAcme(t, f)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "sarah@acme.test", Password: "password123"}, auth.SessionTrackingRequest{UserAgent: "test"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.svc.Logout(ctx, resp.RefreshToken))
	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.Error(t, err)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "sarah@acme.test"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, validator.ErrMissingField)
}

func TestDemo(t *testing.T) {
	ctx := context.Background()

	_, err := newAuthFixture(t, false).svc.Demo(ctx)
	assert.ErrorIs(t, err, auth.ErrDemoDisabled)

	f := newAuthFixture(t, true)
	resp, err := f.svc.Demo(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Actor.Demo)
	assert.True(t, resp.Actor.CanDeleteData)
	assert.Empty(t, resp.RefreshToken)

	decoded, err := f.jwt.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := decoded.AsMap(ctx)
	require.NoError(t, err)
	actor, err := jwt.ActorFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, actor.Demo)
}
