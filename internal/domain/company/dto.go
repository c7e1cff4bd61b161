package company

import (
	"time"

	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"company_code"`
	Name      string    `json:"company_name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

type ManagerCodeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CompanyCode string    `json:"company_code"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewManagerCodeResponse(m ManagerCode) ManagerCodeResponse {
	return ManagerCodeResponse{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		CompanyCode: m.CompanyCode,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

type CreateManagerCodeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=50"`
}

func (r *CreateManagerCodeRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.Required("name")
	}
	if validator.IsEmpty(r.Code) {
		return validator.Required("code")
	}
	return validator.Struct(r)
}
