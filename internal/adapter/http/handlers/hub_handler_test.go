package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"qutlas/internal/adapter/http/handlers/mocks"
	"qutlas/internal/domain/entities"
	"qutlas/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHubHandler_ListHubs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("store unavailable is 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIHubUseCase(ctrl)
		r := gin.New()
		r.GET("/v1/hubs", NewHubHandler(uc).ListHubs)

		uc.EXPECT().ListHubs(gomock.Any()).Return(nil, errs.Mark(errors.New("dynamodb timeout"), errs.ErrDataUnavailable))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/hubs", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("empty registry is an empty array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIHubUseCase(ctrl)
		r := gin.New()
		r.GET("/v1/hubs", NewHubHandler(uc).ListHubs)

		uc.EXPECT().ListHubs(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/hubs", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestHubHandler_MatchHubs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIHubUseCase(ctrl)
	r := gin.New()
	r.POST("/v1/hubs/match", NewHubHandler(uc).MatchHubs)

	uc.EXPECT().MatchHubs(gomock.Any(), gomock.Any()).Return([]entities.HubMatch{
		{HubID: "hub-a", Score: 91.2, Feasible: true},
		{HubID: "hub-b", Score: 40, Feasible: false},
	}, nil)

	body := `{"templateId":"bracket-l","quantity":5,"manufacturabilityScore":80,"deliveryLocation":{"lat":-23.5,"lng":-46.6}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/hubs/match", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "hub-a", got[0]["hubId"])
	assert.Equal(t, false, got[1]["feasible"])
}

func TestHubHandler_MatchHubsRejectsBadCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	r := gin.New()
	r.POST("/v1/hubs/match", NewHubHandler(mocks.NewMockIHubUseCase(ctrl)).MatchHubs)

	body := `{"templateId":"bracket-l","quantity":5,"manufacturabilityScore":80,"deliveryLocation":{"lat":123,"lng":0}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/hubs/match", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
