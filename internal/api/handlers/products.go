package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ateema-proposal-engine/internal/api/dto"
	"github.com/eshaffer321/ateema-proposal-engine/internal/application/service"
	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// ProductsHandler serves the loaded product catalog.
type ProductsHandler struct {
	svc *service.ProposalService
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(svc *service.ProposalService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List handles GET /api/products. ?pool=tourist|industry filters by pool.
func (h *ProductsHandler) List(c *gin.Context) {
	want := c.Query("pool")

	recs := h.svc.Products()
	response := dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		p := h.toResponse(rec)
		if want != "" && p.Pool != want {
			continue
		}
		response.Products = append(response.Products, p)
	}
	response.Count = len(response.Products)

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:name. The name may be loose, e.g.
// "chicago reels".
func (h *ProductsHandler) Get(c *gin.Context) {
	rec, err := h.svc.Product(c.Param("name"))
	if err != nil {
		WriteError(c, http.StatusNotFound, dto.NotFoundError("product"))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(rec))
}

func (h *ProductsHandler) toResponse(rec catalog.ProductRecord) dto.ProductResponse {
	poolName, _ := h.svc.PoolOf(rec)
	return dto.NewProductResponse(rec, h.svc.Category(rec), string(poolName))
}
