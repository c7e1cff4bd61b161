package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	directory company.Directory
}

func NewUserService(userRepository user.UserRepository, directory company.Directory) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		directory:      directory,
	}
}

// ListCompanyUsers implements user.UserService.
func (s *UserServiceImpl) ListCompanyUsers(ctx context.Context, actor user.Actor) ([]user.Actor, error) {
	if !user.IsAdmin(actor) {
		return nil, user.ErrPermissionDenied
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	actors := make([]user.Actor, 0, len(users))
	for _, u := range users {
		if actor.Demo || u.CompanyCode == actor.CompanyCode {
			actors = append(actors, u.Actor())
		}
	}
	return actors, nil
}

// ChangeRole implements user.UserService. Admins promote or demote users of
// their own company; manager and employee roles need a manager code that
// resolves in that company.
func (s *UserServiceImpl) ChangeRole(ctx context.Context, actor user.Actor, req user.ChangeRoleRequest) (user.Actor, error) {
	if !user.IsAdmin(actor) {
		return user.Actor{}, user.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return user.Actor{}, err
	}
	if req.UserID == actor.ID {
		return user.Actor{}, user.ErrSelfRoleChange
	}

	role := user.Role(req.Role)
	if !role.Valid() {
		return user.Actor{}, user.ErrInvalidRole
	}

	target, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Actor{}, err
		}
		return user.Actor{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !actor.Demo && target.CompanyCode != actor.CompanyCode {
		return user.Actor{}, user.ErrUserNotFound
	}

	var managerCode *string
	if role != user.RoleAdmin {
		managerCode = company.NormalizeCodePtr(req.ManagerCode)
		if managerCode == nil {
			managerCode = target.ManagerCode
		}
		if managerCode == nil {
			return user.Actor{}, company.ErrInvalidManagerCode
		}
		if _, err := s.directory.LookupManagerCode(ctx, target.CompanyCode, *managerCode); err != nil {
			if errors.Is(err, company.ErrManagerCodeNotFound) {
				return user.Actor{}, company.ErrInvalidManagerCode
			}
			return user.Actor{}, fmt.Errorf("failed to lookup manager code: %w", err)
		}
	}

	if err := s.UserRepository.UpdateRole(ctx, target.ID, role, managerCode); err != nil {
		return user.Actor{}, fmt.Errorf("failed to update role: %w", err)
	}

	slog.Info("User role changed", "user_id", target.ID, "from", target.Role, "to", role, "by", actor.ID)

	target.Role = role
	target.ManagerCode = managerCode
	return target.Actor(), nil
}
