package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddCertification(w http.ResponseWriter, r *http.Request)
	EditCertification(w http.ResponseWriter, r *http.Request)
	DeleteCertification(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	rosterService employee.RosterService
	now           func() time.Time
}

func NewEmployeeHandler(rosterService employee.RosterService, now func() time.Time) EmployeeHandler {
	if now == nil {
		now = time.Now
	}
	return &EmployeeHandlerImpl{
		rosterService: rosterService,
		now:           now,
	}
}

// List implements EmployeeHandler. Every certification is annotated with its
// expiry tier as of today.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	roster, err := h.rosterService.ListVisible(r.Context(), actor)
	if err != nil {
		slog.Error("ListVisible service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee.NewEmployeeListResponse(roster, h.now()))
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.rosterService.AddEmployee(r.Context(), actor, req)
	if err != nil {
		slog.Error("AddEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", employee.NewEmployeeResponse(created, h.now()))
}

// Delete implements EmployeeHandler. Requires confirm=true.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if !user.CanDeleteData(actor) {
		response.HandleError(w, user.ErrPermissionDenied)
		return
	}
	if !confirmed(r) {
		response.HandleError(w, employee.ErrConfirmationRequired)
		return
	}

	if err := h.rosterService.DeleteEmployee(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// AddCertification implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AddCertification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req employee.CreateCertificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddCertification decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.rosterService.AddCertification(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("AddCertification service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Certification created successfully", employee.NewCertificationResponse(created, h.now()))
}

// EditCertification implements EmployeeHandler.
func (h *EmployeeHandlerImpl) EditCertification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req employee.UpdateCertificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditCertification decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	edited, err := h.rosterService.EditCertification(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("EditCertification service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Certification updated successfully", employee.NewCertificationResponse(edited, h.now()))
}

// DeleteCertification implements EmployeeHandler. Requires confirm=true.
func (h *EmployeeHandlerImpl) DeleteCertification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if !user.CanDeleteData(actor) {
		response.HandleError(w, user.ErrPermissionDenied)
		return
	}
	if !confirmed(r) {
		response.HandleError(w, employee.ErrConfirmationRequired)
		return
	}

	err := h.rosterService.DeleteCertification(r.Context(), actor, chi.URLParam(r, "id"), chi.URLParam(r, "certID"))
	if err != nil {
		slog.Error("DeleteCertification service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Certification deleted successfully", nil)
}
