// Package access decides which employees, and therefore which
// certifications, an actor is entitled to see.
package access

import (
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

// VisibleEmployees filters roster down to the actor's scope. It must be
// applied on every read; the result is a fresh slice sharing no state with
// roster.
func VisibleEmployees(actor user.Actor, roster employee.Roster) employee.Roster {
	visible := employee.Roster{}
	for _, e := range roster {
		if CanSee(actor, e) {
			visible = append(visible, e)
		}
	}
	return visible.Clone()
}

// CanSee applies the scope rules to a single employee, in order: demo sees
// everything, admins see their company, managers see their company's team
// tagged with their manager code, employees see the records of their company
// carrying their own email. Unknown roles see nothing.
func CanSee(actor user.Actor, e employee.Employee) bool {
	if actor.Demo {
		return true
	}

	switch actor.Role {
	case user.RoleAdmin:
		return e.CompanyCode == actor.CompanyCode
	case user.RoleManager:
		return actor.ManagerCode != nil &&
			e.CompanyCode == actor.CompanyCode &&
			e.ManagerCode != nil && *e.ManagerCode == *actor.ManagerCode
	case user.RoleEmployee:
		// The company check keeps the self view inside the tenant boundary
		// when the same email is on file with two companies.
		return actor.Email != "" &&
			e.CompanyCode == actor.CompanyCode &&
			e.Email == actor.Email
	default:
		return false
	}
}
