package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
)

// ProposalsHandler handles proposal generation requests.
type ProposalsHandler struct {
	svc    *service.ProposalService
	logger *slog.Logger
}

// NewProposalsHandler creates a new proposals handler.
func NewProposalsHandler(svc *service.ProposalService, logger *slog.Logger) *ProposalsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProposalsHandler{svc: svc, logger: logger}
}

// Create handles POST /api/proposals - runs the allocator for one client.
func (h *ProposalsHandler) Create(c *gin.Context) {
	var body dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	req, err := body.ToService()
	if err != nil {
		WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	p, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		status, apiErr := dto.FromServiceError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("proposal generation failed", "error", err)
		}
		WriteError(c, status, apiErr)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(c, p))
}

// Get handles GET /api/proposals/:id - returns a recent proposal.
func (h *ProposalsHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Param("id"))
	if err != nil {
		status, apiErr := dto.FromServiceError(err)
		WriteError(c, status, apiErr)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(c, p))
}

// List handles GET /api/proposals - lists recent proposals, newest first.
func (h *ProposalsHandler) List(c *gin.Context) {
	params := dto.DefaultProposalListParams()
	params.Limit = ParseIntParam(c, "limit", params.Limit)

	recent := h.svc.Recent(params.Limit)
	response := dto.ProposalListResponse{
		Proposals: make([]dto.ProposalSummaryResponse, 0, len(recent)),
		Count:     len(recent),
	}
	for _, p := range recent {
		response.Proposals = append(response.Proposals, dto.NewProposalSummary(p))
	}

	c.JSON(http.StatusOK, response)
}

// toResponse attaches the allocator input block when ?preview=true.
func (h *ProposalsHandler) toResponse(c *gin.Context, p *service.Proposal) dto.ProposalResponse {
	resp := dto.NewProposalResponse(p)
	if ParseBoolParam(c, "preview", false) {
		resp.Preview = p.Preview()
	}
	return resp
}
