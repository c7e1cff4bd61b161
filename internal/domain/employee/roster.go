package employee

import (
	"time"

	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

// Roster is the in-memory snapshot of every employee the core operates on.
// Mutating operations never modify the receiver; they return a new Roster,
// so a failed operation leaves the caller's snapshot untouched.
type Roster []Employee

type EmployeeDraft struct {
	Name        string
	JobTitle    string
	Email       string
	CompanyCode string
	ManagerCode *string
	ManagerID   *string
}

type CertificationDraft struct {
	Name          string
	InitialDate   *time.Time
	Expiry        time.Time
	Issuer        string
	LicenseNumber string
}

// CertificationPatch overrides the fields that are non-nil.
type CertificationPatch struct {
	Name          *string
	InitialDate   *time.Time
	Expiry        *time.Time
	Issuer        *string
	LicenseNumber *string
}

// Clone returns a deep copy of r.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for i, e := range r {
		out[i] = e.clone()
	}
	return out
}

// FindEmployee returns the employee with id.
func (r Roster) FindEmployee(id string) (Employee, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Employee{}, false
	}
	return r[i], true
}

// FindCertification searches every employee for the certification id.
func (r Roster) FindCertification(certID string) (Employee, Certification, bool) {
	for _, e := range r {
		for _, c := range e.Certifications {
			if c.ID == certID {
				return e, c, true
			}
		}
	}
	return Employee{}, Certification{}, false
}

// CertificationCount returns the number of certifications owned by employeeID.
func (r Roster) CertificationCount(employeeID string) int {
	e, ok := r.FindEmployee(employeeID)
	if !ok {
		return 0
	}
	return len(e.Certifications)
}

// AddEmployee appends a new employee with a fresh id and no certifications.
func (r Roster) AddEmployee(d EmployeeDraft, now time.Time) (Roster, Employee, error) {
	if validator.IsEmpty(d.Name) {
		return r, Employee{}, validator.Required("name")
	}
	if validator.IsEmpty(d.JobTitle) {
		return r, Employee{}, validator.Required("role")
	}

	e := Employee{
		ID:             NewID(),
		Name:           d.Name,
		JobTitle:       d.JobTitle,
		Email:          d.Email,
		CompanyCode:    d.CompanyCode,
		ManagerCode:    clonePtr(d.ManagerCode),
		ManagerID:      clonePtr(d.ManagerID),
		Certifications: []Certification{},
		CreatedAt:      now,
	}

	out := append(r.Clone(), e)
	return out, e.clone(), nil
}

// AddCertification appends a certification to the employee's list.
func (r Roster) AddCertification(employeeID string, d CertificationDraft) (Roster, Certification, error) {
	if validator.IsEmpty(d.Name) {
		return r, Certification{}, validator.Required("name")
	}
	if d.Expiry.IsZero() {
		return r, Certification{}, validator.Required("expiry")
	}

	i := r.indexOf(employeeID)
	if i < 0 {
		return r, Certification{}, ErrEmployeeNotFound
	}

	c := Certification{
		ID:            NewID(),
		Name:          d.Name,
		InitialDate:   clonePtr(d.InitialDate),
		Expiry:        d.Expiry,
		Issuer:        d.Issuer,
		LicenseNumber: d.LicenseNumber,
	}

	out := r.Clone()
	out[i].Certifications = append(out[i].Certifications, c)
	return out, c.clone(), nil
}

// EditCertification replaces the certification with certID, wherever it
// lives in the roster. The patched record must still carry a name and an
// expiry date.
func (r Roster) EditCertification(certID string, p CertificationPatch) (Roster, Certification, error) {
	ei, ci := r.certIndex(certID)
	if ei < 0 {
		return r, Certification{}, ErrCertificationNotFound
	}

	updated := r[ei].Certifications[ci].clone()
	if p.Name != nil {
		updated.Name = *p.Name
	}
	if p.InitialDate != nil {
		updated.InitialDate = clonePtr(p.InitialDate)
	}
	if p.Expiry != nil {
		updated.Expiry = *p.Expiry
	}
	if p.Issuer != nil {
		updated.Issuer = *p.Issuer
	}
	if p.LicenseNumber != nil {
		updated.LicenseNumber = *p.LicenseNumber
	}

	if validator.IsEmpty(updated.Name) {
		return r, Certification{}, validator.Required("name")
	}
	if updated.Expiry.IsZero() {
		return r, Certification{}, validator.Required("expiry")
	}

	out := r.Clone()
	out[ei].Certifications[ci] = updated
	return out, updated.clone(), nil
}

// DeleteCertification removes certID from the given employee only.
func (r Roster) DeleteCertification(employeeID, certID string) (Roster, error) {
	i := r.indexOf(employeeID)
	if i < 0 {
		return r, ErrEmployeeNotFound
	}

	certs := r[i].Certifications
	for ci, c := range certs {
		if c.ID != certID {
			continue
		}
		out := r.Clone()
		kept := make([]Certification, 0, len(certs)-1)
		kept = append(kept, out[i].Certifications[:ci]...)
		kept = append(kept, out[i].Certifications[ci+1:]...)
		out[i].Certifications = kept
		return out, nil
	}
	return r, ErrCertificationNotFound
}

// DeleteEmployee removes the employee together with all its certifications.
func (r Roster) DeleteEmployee(employeeID string) (Roster, error) {
	i := r.indexOf(employeeID)
	if i < 0 {
		return r, ErrEmployeeNotFound
	}

	out := make(Roster, 0, len(r)-1)
	for j, e := range r {
		if j == i {
			continue
		}
		out = append(out, e.clone())
	}
	return out, nil
}

func (r Roster) indexOf(employeeID string) int {
	for i, e := range r {
		if e.ID == employeeID {
			return i
		}
	}
	return -1
}

func (r Roster) certIndex(certID string) (int, int) {
	for i, e := range r {
		for j, c := range e.Certifications {
			if c.ID == certID {
				return i, j
			}
		}
	}
	return -1, -1
}
