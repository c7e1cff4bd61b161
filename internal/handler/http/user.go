package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Me implements UserHandler. The actor comes straight from the access token.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	response.Success(w, user.NewActorResponse(actor))
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	actors, err := h.userService.ListCompanyUsers(r.Context(), actor)
	if err != nil {
		slog.Error("ListCompanyUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]user.ActorResponse, 0, len(actors))
	for _, a := range actors {
		resp = append(resp, user.NewActorResponse(a))
	}
	response.Success(w, resp)
}

// ChangeRole implements UserHandler.
func (h *UserHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req user.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangeRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	updated, err := h.userService.ChangeRole(r.Context(), actor, req)
	if err != nil {
		slog.Error("ChangeRole service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role updated successfully", user.NewActorResponse(updated))
}
