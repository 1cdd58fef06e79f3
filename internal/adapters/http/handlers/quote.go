package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoting-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoting-service/internal/app"
)

// QuoteHandler serves the quote routes.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// CreateQuote handles POST /api/quotes.
//
// Invalid bodies are rejected with 400 before anything is stored. Upstream
// failures still produce a 200 whose status is partial or failed.
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuoteRequest true "Quote request"
// @Success 200 {object} dto.QuoteSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.service.CreateQuote(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteSummaryResponse(summary))
}

// GetQuote handles GET /api/quotes/:id.
//
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	record, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteEnvelope{Quote: record})
}

// ListQuotes handles GET /api/quotes, newest first.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteListEnvelope
// @Router /api/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	records, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteListEnvelope{Quotes: records})
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.GET("", h.ListQuotes)
	quotes.GET("/:id", h.GetQuote)
}

// respondBindError writes 400 for a body that failed binding or validation,
// or 413 when the body ran past the size cap.
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
			dto.ErrorCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	if dto.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			dto.ValidationErrors(err),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"request body must be a valid quote request",
	).WithTraceID(dto.GetTraceID(c)))
}
