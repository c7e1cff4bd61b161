package auth

import (
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

type RegisterRequest struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Name               string  `json:"name"`
	Role               string  `json:"role,omitempty"`
	CompanyCode        string  `json:"company_code"`
	CompanyName        string  `json:"company_name,omitempty"`
	ManagerCode        *string `json:"manager_code,omitempty"`
	FoundingNewCompany bool    `json:"founding_new_company"`
}

// Validate covers only the required account fields. Everything that needs
// the directory or the user list is checked by the service, in order.
func (r *RegisterRequest) Validate() error {
	if validator.IsEmpty(r.Email) {
		return validator.Required("email")
	}
	if validator.IsEmpty(r.Password) {
		return validator.Required("password")
	}
	if validator.IsEmpty(r.Name) {
		return validator.Required("name")
	}
	return nil
}

// RequestedRole resolves the role for the join path. A blank role means
// employee.
func (r *RegisterRequest) RequestedRole() user.Role {
	if validator.IsEmpty(r.Role) {
		return user.RoleEmployee
	}
	return user.Role(r.Role)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if validator.IsEmpty(r.Email) {
		return validator.Required("email")
	}
	if validator.IsEmpty(r.Password) {
		return validator.Required("password")
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.Required("refresh_token")
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string             `json:"access_token"`
	AccessTokenExpiresIn  int64              `json:"access_token_expires_in"`
	RefreshToken          string             `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int64              `json:"refresh_token_expires_in,omitempty"`
	Actor                 user.ActorResponse `json:"actor"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
