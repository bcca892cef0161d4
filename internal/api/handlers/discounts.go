package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
)

// DiscountsHandler resolves display prices for single lines.
type DiscountsHandler struct {
	svc *service.ProposalService
}

// NewDiscountsHandler creates a new discounts handler.
func NewDiscountsHandler(svc *service.ProposalService) *DiscountsHandler {
	return &DiscountsHandler{svc: svc}
}

// Resolve handles POST /api/discounts.
func (h *DiscountsHandler) Resolve(c *gin.Context) {
	var body dto.DiscountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		WriteError(c, http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if body.BasePrice < 0 {
		WriteError(c, http.StatusBadRequest, dto.ValidationError("base_price must not be negative"))
		return
	}

	req, err := body.ToPricing(h.svc.Advertiser(nil))
	if err != nil {
		WriteError(c, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewDiscountResponse(h.svc.Discount(req)))
}
