package employee

import (
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/expiry"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Role        string  `json:"role" validate:"required,max=255"`
	Email       string  `json:"email" validate:"omitempty,email"`
	CompanyCode string  `json:"company_code,omitempty"`
	ManagerCode *string `json:"manager_code,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.Required("name")
	}
	if validator.IsEmpty(r.Role) {
		return validator.Required("role")
	}
	return validator.Struct(r)
}

type CreateCertificationRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	InitialDate   string `json:"initial_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Expiry        string `json:"expiry" validate:"required,datetime=2006-01-02"`
	Issuer        string `json:"issuer,omitempty" validate:"max=255"`
	LicenseNumber string `json:"license_number,omitempty" validate:"max=255"`
}

func (r *CreateCertificationRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.Required("name")
	}
	if validator.IsEmpty(r.Expiry) {
		return validator.Required("expiry")
	}
	return validator.Struct(r)
}

// ToDraft assumes Validate has passed.
func (r *CreateCertificationRequest) ToDraft() CertificationDraft {
	d := CertificationDraft{
		Name:          r.Name,
		Issuer:        r.Issuer,
		LicenseNumber: r.LicenseNumber,
	}
	d.Expiry, _ = validator.IsValidDate(r.Expiry)
	if r.InitialDate != "" {
		if t, ok := validator.IsValidDate(r.InitialDate); ok {
			d.InitialDate = &t
		}
	}
	return d
}

type UpdateCertificationRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=255"`
	InitialDate   *string `json:"initial_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Expiry        *string `json:"expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Issuer        *string `json:"issuer,omitempty" validate:"omitempty,max=255"`
	LicenseNumber *string `json:"license_number,omitempty" validate:"omitempty,max=255"`
}

func (r *UpdateCertificationRequest) Validate() error {
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		return validator.Required("name")
	}
	if r.Expiry != nil && validator.IsEmpty(*r.Expiry) {
		return validator.Required("expiry")
	}
	return validator.Struct(r)
}

// ToPatch assumes Validate has passed.
func (r *UpdateCertificationRequest) ToPatch() CertificationPatch {
	p := CertificationPatch{
		Name:          r.Name,
		Issuer:        r.Issuer,
		LicenseNumber: r.LicenseNumber,
	}
	if r.InitialDate != nil {
		if t, ok := validator.IsValidDate(*r.InitialDate); ok {
			p.InitialDate = &t
		}
	}
	if r.Expiry != nil {
		if t, ok := validator.IsValidDate(*r.Expiry); ok {
			p.Expiry = &t
		}
	}
	return p
}

type CertificationResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	InitialDate   *string     `json:"initial_date,omitempty"`
	Expiry        string      `json:"expiry"`
	Issuer        string      `json:"issuer,omitempty"`
	LicenseNumber string      `json:"license_number,omitempty"`
	DaysRemaining int         `json:"days_remaining"`
	Tier          expiry.Tier `json:"tier"`
	Label         string      `json:"label"`
}

func NewCertificationResponse(c Certification, today time.Time) CertificationResponse {
	class := expiry.Classify(c.Expiry, today)
	resp := CertificationResponse{
		ID:            c.ID,
		Name:          c.Name,
		Expiry:        c.Expiry.Format(validator.DateLayout),
		Issuer:        c.Issuer,
		LicenseNumber: c.LicenseNumber,
		DaysRemaining: class.DaysRemaining,
		Tier:          class.Tier,
		Label:         class.Label(),
	}
	if c.InitialDate != nil {
		s := c.InitialDate.Format(validator.DateLayout)
		resp.InitialDate = &s
	}
	return resp
}

type EmployeeResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Role           string                  `json:"role"`
	Email          string                  `json:"email,omitempty"`
	CompanyCode    string                  `json:"company_code"`
	ManagerCode    *string                 `json:"manager_code,omitempty"`
	ManagerID      *string                 `json:"manager_id,omitempty"`
	Certifications []CertificationResponse `json:"certifications"`
}

func NewEmployeeResponse(e Employee, today time.Time) EmployeeResponse {
	certs := make([]CertificationResponse, 0, len(e.Certifications))
	for _, c := range e.Certifications {
		certs = append(certs, NewCertificationResponse(c, today))
	}
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Role:           e.JobTitle,
		Email:          e.Email,
		CompanyCode:    e.CompanyCode,
		ManagerCode:    e.ManagerCode,
		ManagerID:      e.ManagerID,
		Certifications: certs,
	}
}

func NewEmployeeListResponse(r Roster, today time.Time) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(r))
	for _, e := range r {
		out = append(out, NewEmployeeResponse(e, today))
	}
	return out
}
