package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Company admin - full access to the company roster
	RoleManager  Role = "manager"  // Manages the employees registered under their manager code
	RoleEmployee Role = "employee" // Sees only their own record
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User is the stored account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CompanyCode  string
	ManagerCode  *string
	CreatedAt    time.Time
}

// Actor returns the session identity for u.
func (u User) Actor() Actor {
	return Actor{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		CompanyCode: u.CompanyCode,
		ManagerCode: u.ManagerCode,
		CreatedAt:   u.CreatedAt,
	}
}

// Actor is an authenticated identity with a role and tenancy scope.
type Actor struct {
	ID          string
	Email       string
	Name        string
	Role        Role
	CompanyCode string
	ManagerCode *string
	CreatedAt   time.Time

	// Demo actors bypass company scoping and hold every capability.
	Demo bool
}

const (
	DemoActorID = "demo"
	DemoCompany = "DEMO"
)

// DemoActor returns the scope-bypassing pseudo-actor used for trials.
func DemoActor() Actor {
	return Actor{
		ID:          DemoActorID,
		Email:       "demo@certtracker.local",
		Name:        "Demo User",
		Role:        RoleAdmin,
		CompanyCode: DemoCompany,
		Demo:        true,
	}
}
