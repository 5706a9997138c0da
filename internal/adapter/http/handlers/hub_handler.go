package handlers

import (
	"net/http"

	"qutlas/internal/adapter/http/dto/request"
	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HubHandler struct {
	usecase usecase.IHubUseCase
}

func NewHubHandler(uc usecase.IHubUseCase) *HubHandler {
	return &HubHandler{usecase: uc}
}

// @Summary List hubs
// @Tags hubs
// @Produce json
// @Success 200 {array} response.HubResponse
// @Failure 503 {object} pkg.HTTPError
// @Router /hubs [get]
func (h *HubHandler) ListHubs(c *gin.Context) {
	hubs, err := h.usecase.ListHubs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromHubs(hubs))
}

// MatchHubs ranks every registered hub for the part, best first.
// Infeasible hubs are returned with feasible=false.
//
// @Summary Match hubs
// @Tags hubs
// @Accept json
// @Produce json
// @Param request body request.PartRequest true "Part request"
// @Success 200 {array} response.HubMatchResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 503 {object} pkg.HTTPError
// @Router /hubs/match [post]
func (h *HubHandler) MatchHubs(c *gin.Context) {
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

	matches, err := h.usecase.MatchHubs(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromHubMatches(matches))
}
