package user

type Capability string

const (
	CapabilityManageEmployees      Capability = "employee.manage"
	CapabilityManageCertifications Capability = "certification.manage"
	CapabilityDeleteData           Capability = "data.delete"
	CapabilityAdminister           Capability = "company.administer"
)

// RoleCapabilities maps roles to their capabilities
var RoleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapabilityManageEmployees,
		CapabilityManageCertifications,
		CapabilityDeleteData,
		CapabilityAdminister,
	},
	RoleManager: {
		// Managers add and edit, but never delete
		CapabilityManageEmployees,
		CapabilityManageCertifications,
	},
	RoleEmployee: {},
}

// HasCapability checks if a role has a specific capability
func HasCapability(role Role, capability Capability) bool {
	capabilities, exists := RoleCapabilities[role]
	if !exists {
		return false
	}

	for _, c := range capabilities {
		if c == capability {
			return true
		}
	}

	return false
}

// Can reports whether the actor holds capability. Demo actors hold all.
func (a Actor) Can(capability Capability) bool {
	if a.Demo {
		return true
	}
	return HasCapability(a.Role, capability)
}

func CanManageEmployees(a Actor) bool {
	return a.Can(CapabilityManageEmployees)
}

func CanManageCertifications(a Actor) bool {
	return a.Can(CapabilityManageCertifications)
}

// CanDeleteData is admin (or demo) only.
func CanDeleteData(a Actor) bool {
	return a.Can(CapabilityDeleteData)
}

func IsAdmin(a Actor) bool {
	return a.Can(CapabilityAdminister)
}
