package user

import (
	"context"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

// ActorResponse represents the current actor in API responses
type ActorResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	CompanyCode string  `json:"company_code"`
	ManagerCode *string `json:"manager_code,omitempty"`
	Demo        bool    `json:"demo,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`

	CanManageEmployees      bool `json:"can_manage_employees"`
	CanManageCertifications bool `json:"can_manage_certifications"`
	CanDeleteData           bool `json:"can_delete_data"`
	IsAdmin                 bool `json:"is_admin"`
}

func NewActorResponse(a Actor) ActorResponse {
	resp := ActorResponse{
		ID:                      a.ID,
		Email:                   a.Email,
		Name:                    a.Name,
		Role:                    string(a.Role),
		CompanyCode:             a.CompanyCode,
		ManagerCode:             a.ManagerCode,
		Demo:                    a.Demo,
		CanManageEmployees:      CanManageEmployees(a),
		CanManageCertifications: CanManageCertifications(a),
		CanDeleteData:           CanDeleteData(a),
		IsAdmin:                 IsAdmin(a),
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// ChangeRoleRequest promotes or demotes a user within the admin's company
type ChangeRoleRequest struct {
	UserID      string  `json:"-"`
	Role        string  `json:"role" validate:"required,oneof=admin manager employee"`
	ManagerCode *string `json:"manager_code,omitempty"`
}

func (r *ChangeRoleRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.Required("id")
	}
	return validator.Struct(r)
}

type UserService interface {
	ListCompanyUsers(ctx context.Context, actor Actor) ([]Actor, error)
	ChangeRole(ctx context.Context, actor Actor, req ChangeRoleRequest) (Actor, error)
}

type actorContextKey struct{}

// WithActor stores the actor in ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, a)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, error) {
	a, ok := ctx.Value(actorContextKey{}).(Actor)
	if !ok {
		return Actor{}, ErrActorNotFound
	}
	return a, nil
}
