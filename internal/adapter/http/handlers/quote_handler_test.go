package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qutlas/internal/adapter/http/handlers/mocks"
	"qutlas/internal/domain/entities"
	"qutlas/pkg/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validPartBody = `{"templateId":"bracket-l","quantity":10,"material":"Aluminum 6061-T6","manufacturabilityScore":90}`

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewQuoteHandler(mocks.NewMockIQuoteUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		for _, body := range []string{"{", `{"templateId":"bracket-l","quantity":0,"manufacturabilityScore":50}`, `{"templateId":"bracket-l","quantity":1}`} {
			req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("body %s: expected 400, got %d", body, w.Code)
			}
		}
	})

	t.Run("unsupported material", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, errs.Markf(errs.ErrUnsupportedMaterial, "titanium"))

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(validPartBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req entities.PartRequest) (entities.Quote, error) {
			if req.TemplateID != "bracket-l" || req.Quantity != 10 || req.ManufacturabilityScore != 90 {
				t.Fatalf("unexpected request: %+v", req)
			}
			return entities.Quote{ID: "q-1", TemplateID: "bracket-l", Quantity: 10, TotalPrice: 402.5, Currency: "BRL", ValidUntil: time.Now().Add(time.Hour)}, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(validPartBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["id"] != "q-1" || body["totalPrice"] != 402.5 {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)

	r := gin.New()
	r.GET("/v1/quotes/:id", h.GetQuote)

	uc.EXPECT().GetQuote(gomock.Any(), "q-old").Return(entities.Quote{}, errs.Markf(errs.ErrQuoteExpired, "q-old"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotes/q-old", nil))
	if w.Code != http.StatusGone {
		t.Fatalf("expected 410, got %d", w.Code)
	}
}
