package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
)

// AwardsHandler serves the Summit awards index.
type AwardsHandler struct {
	svc *service.ProposalService
}

// NewAwardsHandler creates a new awards handler.
func NewAwardsHandler(svc *service.ProposalService) *AwardsHandler {
	return &AwardsHandler{svc: svc}
}

// List handles GET /api/awards. ?business_type=CVB adds the matching award.
func (h *AwardsHandler) List(c *gin.Context) {
	categories := h.svc.AwardCategories()
	if categories == nil {
		categories = []string{}
	}
	response := dto.AwardsResponse{Categories: categories, Count: len(categories)}
	if bt := c.Query("business_type"); bt != "" {
		response.Match, _ = h.svc.AwardFor(bt)
	}
	c.JSON(http.StatusOK, response)
}
