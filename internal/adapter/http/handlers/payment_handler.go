package handlers

import (
	"net/http"
	"strings"

	"qutlas/internal/adapter/http/dto/request"
	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/usecase"
	"qutlas/pkg"
	"qutlas/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errMissingPaymentRef = pkg.NewDomainErrorSimple("INVALID_INPUT", "reference or transaction_id is required", http.StatusBadRequest)

// PaymentHandler receives gateway notifications and customer return
// redirects. Neither trusts the caller's status: the payment is always
// re-read from the gateway.
type PaymentHandler struct {
	usecase usecase.IPaymentReconcilerUseCase
}

func NewPaymentHandler(uc usecase.IPaymentReconcilerUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// Webhook
//
// @Summary Payment gateway webhook
// @Tags payments
// @Accept json
// @Produce json
// @Param request body request.PaymentNotificationRequest false "Gateway notification"
// @Success 200 {object} response.JobResponse
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Failure 503 {object} pkg.HTTPError
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload request.PaymentNotificationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeAppError(c, errInvalidPayload)
			return
		}
	}

	paymentID := payload.ResolvePaymentID(c.Query)
	if paymentID == "" {
		// Merchant order and other topics carry nothing to reconcile.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	job, err := h.usecase.VerifyByTransactionID(c.Request.Context(), paymentID)
	if err != nil {
		// Unknown payments are acknowledged so the gateway stops redelivering.
		if errs.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromJob(job))
}

// Verify reconciles a payment from the checkout return redirect, which
// carries external_reference or payment_id.
//
// @Summary Verify payment
// @Tags payments
// @Produce json
// @Param reference query string false "Payment reference"
// @Param transaction_id query string false "Gateway payment ID"
// @Success 200 {object} response.JobResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /payments/verify [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	if ref := firstQuery(c, "reference", "external_reference"); ref != "" {
		job, err := h.usecase.VerifyByReference(ctx, ref)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromJob(job))
		return
	}

	if id := firstQuery(c, "transaction_id", "payment_id"); id != "" {
		job, err := h.usecase.VerifyByTransactionID(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromJob(job))
		return
	}

	writeAppError(c, errMissingPaymentRef)
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
