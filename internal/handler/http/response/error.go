package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/auth"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var required *validator.RequiredError
	if errors.As(err, &required) {
		ValidationError(w, map[string]string{required.Field: required.Error()})
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrDemoDisabled):
		Forbidden(w, "Demo mode is disabled")

	// Tenancy
	case errors.Is(err, company.ErrDuplicateCompanyCode):
		Conflict(w, "Company code already exists")
	case errors.Is(err, company.ErrDuplicateManagerCode):
		Conflict(w, "Manager code already exists in this company")
	case errors.Is(err, company.ErrInvalidCompanyCode):
		BadRequest(w, "Invalid company code", nil)
	case errors.Is(err, company.ErrInvalidManagerCode):
		BadRequest(w, "Invalid manager code", nil)
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrManagerCodeNotFound):
		NotFound(w, "Manager code not found")

	// Users
	case errors.Is(err, user.ErrDuplicateEmail):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")
	case errors.Is(err, user.ErrSelfRoleChange):
		Forbidden(w, "You cannot change your own role")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrActorNotFound):
		Unauthorized(w, "Unauthorized")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Roster
	case errors.Is(err, employee.ErrConfirmationRequired):
		PreconditionRequired(w, "Deletion must be confirmed with confirm=true")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCertificationNotFound):
		NotFound(w, "Certification not found")
	case errors.Is(err, employee.ErrNotFound):
		NotFound(w, "Not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
