package employee

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRoster(t *testing.T) (Roster, Employee, Certification) {
	t.Helper()
	r, emp, err := Roster{}.AddEmployee(EmployeeDraft{
		Name:        "Sarah Johnson",
		JobTitle:    "RN",
		Email:       "sarah.j@clinic.com",
		CompanyCode: "ACME",
	}, now)
	require.NoError(t, err)

	r, cert, err := r.AddCertification(emp.ID, CertificationDraft{
		Name:   "CPR Certification",
		Expiry: date(2025, time.September, 15),
		Issuer: "Red Cross",
	})
	require.NoError(t, err)
	return r, emp, cert
}

func TestAddEmployee(t *testing.T) {
	r, emp, err := Roster{}.AddEmployee(EmployeeDraft{Name: "Ana", JobTitle: "Nurse", CompanyCode: "ACME"}, now)

	require.NoError(t, err)
	require.Len(t, r, 1)
	assert.NotEmpty(t, emp.ID)
	assert.Equal(t, emp.ID, r[0].ID)
	assert.Empty(t, r[0].Certifications)
	assert.NotNil(t, r[0].Certifications)
	assert.Equal(t, now, emp.CreatedAt)
}

func TestAddEmployee_RequiresNameAndRole(t *testing.T) {
	base, _, _ := seedRoster(t)

	tests := []struct {
		name  string
		draft EmployeeDraft
		field string
	}{
		{"blank name", EmployeeDraft{Name: "  ", JobTitle: "RN"}, "name"},
		{"blank role", EmployeeDraft{Name: "Ana"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := base.AddEmployee(tt.draft, now)

			assert.ErrorIs(t, err, validator.ErrMissingField)
			var reqErr *validator.RequiredError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.field, reqErr.Field)
			assert.Equal(t, base, out)
			assert.Len(t, base, 1)
		})
	}
}

func TestAddEmployee_FreshIDsNeverCollide(t *testing.T) {
	r := Roster{}
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		var emp Employee
		var err error
		r, emp, err = r.AddEmployee(EmployeeDraft{Name: "E", JobTitle: "T"}, now)
		require.NoError(t, err)
		require.False(t, seen[emp.ID], "duplicate id %s", emp.ID)
		seen[emp.ID] = true
	}
}

func TestAddCertification(t *testing.T) {
	r, emp, cert := seedRoster(t)

	assert.NotEmpty(t, cert.ID)
	assert.Equal(t, 1, r.CertificationCount(emp.ID))

	_, _, err := r.AddCertification("missing", CertificationDraft{Name: "X", Expiry: now})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, _, err = r.AddCertification(emp.ID, CertificationDraft{Name: "X"})
	assert.ErrorIs(t, err, validator.ErrMissingField)

	_, _, err = r.AddCertification(emp.ID, CertificationDraft{Expiry: now})
	assert.ErrorIs(t, err, validator.ErrMissingField)
}

func TestAddCertification_DoesNotMutateReceiver(t *testing.T) {
	r, emp, _ := seedRoster(t)

	next, _, err := r.AddCertification(emp.ID, CertificationDraft{Name: "RN License", Expiry: date(2025, time.August, 30)})

	require.NoError(t, err)
	assert.Equal(t, 1, r.CertificationCount(emp.ID))
	assert.Equal(t, 2, next.CertificationCount(emp.ID))
}

func TestEditCertification_SearchesWholeRoster(t *testing.T) {
	r, _, _ := seedRoster(t)
	r, other, err := r.AddEmployee(EmployeeDraft{Name: "Ben", JobTitle: "MD", CompanyCode: "ACME"}, now)
	require.NoError(t, err)
	r, cert, err := r.AddCertification(other.ID, CertificationDraft{Name: "BLS", Expiry: date(2026, time.January, 1)})
	require.NoError(t, err)

	newName := "BLS Provider"
	newExpiry := date(2027, time.January, 1)
	out, updated, err := r.EditCertification(cert.ID, CertificationPatch{Name: &newName, Expiry: &newExpiry})

	require.NoError(t, err)
	assert.Equal(t, cert.ID, updated.ID)
	assert.Equal(t, "BLS Provider", updated.Name)

	owner, found, ok := out.FindCertification(cert.ID)
	require.True(t, ok)
	assert.Equal(t, other.ID, owner.ID, "certification must stay with its owner")
	assert.Equal(t, newExpiry, found.Expiry)
}

func TestEditCertification_RejectsBlankResult(t *testing.T) {
	r, _, cert := seedRoster(t)

	blank := ""
	out, _, err := r.EditCertification(cert.ID, CertificationPatch{Name: &blank})
	assert.ErrorIs(t, err, validator.ErrMissingField)
	_, still, _ := out.FindCertification(cert.ID)
	assert.Equal(t, "CPR Certification", still.Name)

	zero := time.Time{}
	_, _, err = r.EditCertification(cert.ID, CertificationPatch{Expiry: &zero})
	assert.ErrorIs(t, err, validator.ErrMissingField)

	_, _, err = r.EditCertification("missing", CertificationPatch{})
	assert.ErrorIs(t, err, ErrCertificationNotFound)
}

func TestDeleteCertification(t *testing.T) {
	r, emp, cert := seedRoster(t)

	_, err := r.DeleteCertification(emp.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.DeleteCertification("missing", cert.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	out, err := r.DeleteCertification(emp.ID, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.CertificationCount(emp.ID))
	assert.Equal(t, 1, r.CertificationCount(emp.ID))
}

func TestDeleteCertification_ScopedToEmployee(t *testing.T) {
	r, _, cert := seedRoster(t)
	r, other, err := r.AddEmployee(EmployeeDraft{Name: "Ben", JobTitle: "MD"}, now)
	require.NoError(t, err)

	_, err = r.DeleteCertification(other.ID, cert.ID)
	assert.ErrorIs(t, err, ErrCertificationNotFound)
}

func TestDeleteEmployee_Cascades(t *testing.T) {
	r, emp, cert := seedRoster(t)

	out, err := r.DeleteEmployee(emp.ID)

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, out.CertificationCount(emp.ID))
	_, _, ok := out.FindCertification(cert.ID)
	assert.False(t, ok)

	_, err = out.DeleteEmployee(emp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClone_IsDeep(t *testing.T) {
	r, _, _ := seedRoster(t)
	code := "TEAM1"
	r[0].ManagerCode = &code

	c := r.Clone()
	c[0].Certifications[0].Name = "changed"
	*c[0].ManagerCode = "OTHER"

	assert.Equal(t, "CPR Certification", r[0].Certifications[0].Name)
	assert.Equal(t, "TEAM1", *r[0].ManagerCode)
}
