package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/repository/memory"
	companyService "github.com/cmlabs-hris/certtracker/internal/service/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     user.UserService
	users   user.UserRepository
	admin   user.Actor
	worker  user.User
	outside user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	directory := companyService.NewCompanyService(memory.NewCompanyRepository(store), memory.NewManagerCodeRepository(store))
	users := memory.NewUserRepository(store)

	for _, code := range []string{"ACME", "GLOBEX"} {
		_, err := directory.RegisterCompany(ctx, code, code, "founder@test")
		require.NoError(t, err)
	}
	_, err := directory.RegisterManagerCode(ctx, "ACME", "Team A", "TEAM-A", "founder@test")
	require.NoError(t, err)

	adminUser, err := users.Create(ctx, user.User{Email: "sarah@acme.test", Role: user.RoleAdmin, CompanyCode: "ACME"})
	require.NoError(t, err)
	teamA := "TEAM-A"
	worker, err := users.Create(ctx, user.User{Email: "ann@acme.test", Role: user.RoleEmployee, CompanyCode: "ACME", ManagerCode: &teamA})
	require.NoError(t, err)
	outside, err := users.Create(ctx, user.User{Email: "hank@globex.test", Role: user.RoleEmployee, CompanyCode: "GLOBEX"})
	require.NoError(t, err)

	return fixture{
		svc:     NewUserService(users, directory),
		users:   users,
		admin:   adminUser.Actor(),
		worker:  worker,
		outside: outside,
	}
}

func TestChangeRole_PromoteToManager(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.ChangeRole(context.Background(), f.admin, user.ChangeRoleRequest{UserID: f.worker.ID, Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, got.Role)
	require.NotNil(t, got.ManagerCode)
	assert.Equal(t, "TEAM-A", *got.ManagerCode)

	stored, err := f.users.GetByID(context.Background(), f.worker.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, stored.Role)
}

func TestChangeRole_PromoteToAdminClearsManagerCode(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.ChangeRole(context.Background(), f.admin, user.ChangeRoleRequest{UserID: f.worker.ID, Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, got.Role)
	assert.Nil(t, got.ManagerCode)
}

func TestChangeRole_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := user.Actor{ID: "m", Role: user.RoleManager, CompanyCode: "ACME"}

	_, err := f.svc.ChangeRole(ctx, manager, user.ChangeRoleRequest{UserID: f.worker.ID, Role: "admin"})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)

	_, err = f.svc.ChangeRole(ctx, f.admin, user.ChangeRoleRequest{UserID: f.admin.ID, Role: "employee"})
	assert.ErrorIs(t, err, user.ErrSelfRoleChange)

	_, err = f.svc.ChangeRole(ctx, f.admin, user.ChangeRoleRequest{UserID: f.outside.ID, Role: "admin"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	bad := "TEAM-Z"
	_, err = f.svc.ChangeRole(ctx, f.admin, user.ChangeRoleRequest{UserID: f.worker.ID, Role: "manager", ManagerCode: &bad})
	assert.ErrorIs(t, err, company.ErrInvalidManagerCode)

	_, err = f.svc.ChangeRole(ctx, f.admin, user.ChangeRoleRequest{UserID: f.worker.ID, Role: "owner"})
	assert.Error(t, err)
}

func TestListCompanyUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	actors, err := f.svc.ListCompanyUsers(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, actors, 2)

	demo, err := f.svc.ListCompanyUsers(ctx, user.DemoActor())
	require.NoError(t, err)
	assert.Len(t, demo, 3)

	_, err = f.svc.ListCompanyUsers(ctx, user.Actor{Role: user.RoleEmployee, CompanyCode: "ACME"})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}
