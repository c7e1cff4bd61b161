package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/access"
	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
)

// RosterServiceImpl wraps the pure roster operations with the permission
// gate, scope resolution and persistence. Every mutation follows the same
// path: gate, load, locate inside the actor's scope, apply, save. Targets
// outside the actor's scope are reported as not found.
type RosterServiceImpl struct {
	employee.RosterRepository
	directory company.Directory
	now       func() time.Time
}

type Option func(*RosterServiceImpl)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *RosterServiceImpl) {
		s.now = now
	}
}

func NewRosterService(rosterRepository employee.RosterRepository, directory company.Directory, opts ...Option) employee.RosterService {
	s := &RosterServiceImpl{
		RosterRepository: rosterRepository,
		directory:        directory,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListVisible implements employee.RosterService.
func (s *RosterServiceImpl) ListVisible(ctx context.Context, actor user.Actor) (employee.Roster, error) {
	roster, err := s.RosterRepository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return access.VisibleEmployees(actor, roster), nil
}

// AddEmployee implements employee.RosterService.
func (s *RosterServiceImpl) AddEmployee(ctx context.Context, actor user.Actor, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if !user.CanManageEmployees(actor) {
		return employee.Employee{}, user.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	draft, err := s.resolveDraft(ctx, actor, req)
	if err != nil {
		return employee.Employee{}, err
	}

	roster, err := s.RosterRepository.Load(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to load roster: %w", err)
	}

	updated, created, err := roster.AddEmployee(draft, s.now().UTC())
	if err != nil {
		return employee.Employee{}, err
	}
	if err := s.RosterRepository.Save(ctx, updated); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Employee added", "employee_id", created.ID, "company_code", created.CompanyCode, "by", actor.ID)
	return created, nil
}

// resolveDraft fixes the tenancy fields of a new employee. Non-demo actors
// always create inside their own company, and managers only inside their own
// team. Any manager code must exist in the target company.
func (s *RosterServiceImpl) resolveDraft(ctx context.Context, actor user.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeDraft, error) {
	draft := employee.EmployeeDraft{
		Name:     strings.TrimSpace(req.Name),
		JobTitle: strings.TrimSpace(req.Role),
		Email:    strings.TrimSpace(req.Email),
	}

	requestedCompany := company.NormalizeCode(req.CompanyCode)
	switch {
	case actor.Demo && requestedCompany != "":
		draft.CompanyCode = requestedCompany
	case requestedCompany != "" && requestedCompany != actor.CompanyCode:
		return employee.EmployeeDraft{}, user.ErrPermissionDenied
	default:
		draft.CompanyCode = actor.CompanyCode
	}

	if _, err := s.directory.LookupCompany(ctx, draft.CompanyCode); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return employee.EmployeeDraft{}, company.ErrInvalidCompanyCode
		}
		return employee.EmployeeDraft{}, fmt.Errorf("failed to lookup company: %w", err)
	}

	requestedManager := company.NormalizeCodePtr(req.ManagerCode)
	if !actor.Demo && actor.Role == user.RoleManager {
		if actor.ManagerCode == nil {
			return employee.EmployeeDraft{}, user.ErrPermissionDenied
		}
		if requestedManager != nil && *requestedManager != *actor.ManagerCode {
			return employee.EmployeeDraft{}, user.ErrPermissionDenied
		}
		own := *actor.ManagerCode
		managerID := actor.ID
		requestedManager = &own
		draft.ManagerID = &managerID
	}

	if requestedManager != nil {
		if _, err := s.directory.LookupManagerCode(ctx, draft.CompanyCode, *requestedManager); err != nil {
			if errors.Is(err, company.ErrManagerCodeNotFound) {
				return employee.EmployeeDraft{}, company.ErrInvalidManagerCode
			}
			return employee.EmployeeDraft{}, fmt.Errorf("failed to lookup manager code: %w", err)
		}
		draft.ManagerCode = requestedManager
	}

	return draft, nil
}

// DeleteEmployee implements employee.RosterService. The caller must have
// obtained confirmation first.
func (s *RosterServiceImpl) DeleteEmployee(ctx context.Context, actor user.Actor, employeeID string) error {
	if !user.CanDeleteData(actor) {
		return user.ErrPermissionDenied
	}

	roster, err := s.loadWithVisibleEmployee(ctx, actor, employeeID)
	if err != nil {
		return err
	}

	updated, err := roster.DeleteEmployee(employeeID)
	if err != nil {
		return err
	}
	if err := s.RosterRepository.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Employee deleted", "employee_id", employeeID, "by", actor.ID)
	return nil
}

// AddCertification implements employee.RosterService.
func (s *RosterServiceImpl) AddCertification(ctx context.Context, actor user.Actor, employeeID string, req employee.CreateCertificationRequest) (employee.Certification, error) {
	if !user.CanManageCertifications(actor) {
		return employee.Certification{}, user.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return employee.Certification{}, err
	}

	roster, err := s.loadWithVisibleEmployee(ctx, actor, employeeID)
	if err != nil {
		return employee.Certification{}, err
	}

	updated, created, err := roster.AddCertification(employeeID, req.ToDraft())
	if err != nil {
		return employee.Certification{}, err
	}
	if err := s.RosterRepository.Save(ctx, updated); err != nil {
		return employee.Certification{}, fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Certification added", "employee_id", employeeID, "certification_id", created.ID, "by", actor.ID)
	return created, nil
}

// EditCertification implements employee.RosterService. The certification is
// located by id among every employee the actor can see.
func (s *RosterServiceImpl) EditCertification(ctx context.Context, actor user.Actor, certID string, req employee.UpdateCertificationRequest) (employee.Certification, error) {
	if !user.CanManageCertifications(actor) {
		return employee.Certification{}, user.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return employee.Certification{}, err
	}

	roster, err := s.RosterRepository.Load(ctx)
	if err != nil {
		return employee.Certification{}, fmt.Errorf("failed to load roster: %w", err)
	}
	if _, _, ok := access.VisibleEmployees(actor, roster).FindCertification(certID); !ok {
		return employee.Certification{}, employee.ErrCertificationNotFound
	}

	updated, edited, err := roster.EditCertification(certID, req.ToPatch())
	if err != nil {
		return employee.Certification{}, err
	}
	if err := s.RosterRepository.Save(ctx, updated); err != nil {
		return employee.Certification{}, fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Certification updated", "certification_id", certID, "by", actor.ID)
	return edited, nil
}

// DeleteCertification implements employee.RosterService. The caller must
// have obtained confirmation first.
func (s *RosterServiceImpl) DeleteCertification(ctx context.Context, actor user.Actor, employeeID, certID string) error {
	if !user.CanDeleteData(actor) {
		return user.ErrPermissionDenied
	}

	roster, err := s.loadWithVisibleEmployee(ctx, actor, employeeID)
	if err != nil {
		return err
	}

	updated, err := roster.DeleteCertification(employeeID, certID)
	if err != nil {
		return err
	}
	if err := s.RosterRepository.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	slog.Info("Certification deleted", "employee_id", employeeID, "certification_id", certID, "by", actor.ID)
	return nil
}

func (s *RosterServiceImpl) loadWithVisibleEmployee(ctx context.Context, actor user.Actor, employeeID string) (employee.Roster, error) {
	roster, err := s.RosterRepository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	e, ok := roster.FindEmployee(employeeID)
	if !ok || !access.CanSee(actor, e) {
		return nil, employee.ErrEmployeeNotFound
	}
	return roster, nil
}
