package handlers

import (
	"net/http"

	"qutlas/internal/adapter/http/dto/request"
	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/usecase"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote prices a part request and caches the quote until it expires.
//
// @Summary Create quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body request.PartRequest true "Part request"
// @Success 201 {object} response.QuoteResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 422 {object} pkg.HTTPError
// @Failure 503 {object} pkg.HTTPError
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.PartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToEntity()
	if err != nil {
		writeError(c, err)
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// GetQuote
//
// @Summary Get quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.QuoteResponse
// @Failure 410 {object} pkg.HTTPError
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}
