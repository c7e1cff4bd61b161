package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/certtracker/internal/domain/company"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	ListManagerCodes(w http.ResponseWriter, r *http.Request)
	CreateManagerCode(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMine implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	found, err := c.companyService.LookupCompany(r.Context(), actor.CompanyCode)
	if err != nil {
		slog.Error("LookupCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, company.NewCompanyResponse(found))
}

// ListManagerCodes implements CompanyHandler.
func (c *CompanyHandlerImpl) ListManagerCodes(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	codes, err := c.companyService.ListManagerCodes(r.Context(), actor)
	if err != nil {
		slog.Error("ListManagerCodes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]company.ManagerCodeResponse, 0, len(codes))
	for _, m := range codes {
		resp = append(resp, company.NewManagerCodeResponse(m))
	}
	response.Success(w, resp)
}

// CreateManagerCode implements CompanyHandler.
func (c *CompanyHandlerImpl) CreateManagerCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req company.CreateManagerCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateManagerCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := c.companyService.CreateManagerCode(r.Context(), actor, req)
	if err != nil {
		slog.Error("CreateManagerCode service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Manager code created successfully", company.NewManagerCodeResponse(created))
}
