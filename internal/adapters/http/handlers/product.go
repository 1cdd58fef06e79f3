package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoting-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoting-service/internal/app"
)

// ProductHandler serves catalog lookups.
type ProductHandler struct {
	service *app.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *app.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// GetProduct handles GET /api/products/:id. Upstream failures are 500.
//
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Shopify product ID"
// @Success 200 {object} dto.ProductEnvelope
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductEnvelope{Product: product})
}

// RegisterProductRoutes registers product routes on rg.
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id", h.GetProduct)
}
