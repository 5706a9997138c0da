package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"qutlas/pkg"
	"qutlas/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	HeaderCustomerID = "X-Customer-ID"
	HeaderHubID      = "X-Hub-ID"
)

var (
	errInvalidPayload  = pkg.NewDomainErrorSimple("INVALID_INPUT", "Invalid request payload", http.StatusBadRequest)
	errMissingCustomer = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing "+HeaderCustomerID+" header", http.StatusUnauthorized)
	errMissingHub      = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing "+HeaderHubID+" header", http.StatusUnauthorized)
)

// mapError translates the usecase error taxonomy into the HTTP envelope.
func mapError(err error) *pkg.AppError {
	switch {
	case errs.Is(err, errs.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_INPUT", "Invalid request", err, http.StatusBadRequest)
	case errs.Is(err, errs.ErrUnsupportedMaterial):
		return pkg.NewDomainError("UNSUPPORTED_MATERIAL", "Material not offered for this part template", err, http.StatusUnprocessableEntity)
	case errs.Is(err, errs.ErrHubIncompatible):
		return pkg.NewDomainError("HUB_INCOMPATIBLE", "Hub cannot produce this part", err, http.StatusUnprocessableEntity)
	case errs.Is(err, errs.ErrQuoteExpired):
		return pkg.NewDomainError("QUOTE_EXPIRED", "Quote expired or unknown", err, http.StatusGone)
	case errs.Is(err, errs.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Job status change not allowed", err, http.StatusConflict)
	case errs.Is(err, errs.ErrPaymentMismatch):
		return pkg.NewDomainError("PAYMENT_MISMATCH", "Payment does not match the quote", err, http.StatusConflict)
	case errs.Is(err, errs.ErrPaymentConflict):
		return pkg.NewDomainError("PAYMENT_CONFLICT", "Payment reference already settled with a different status", err, http.StatusConflict)
	case errs.Is(err, errs.ErrConflict):
		return pkg.NewDomainError("CONFLICT", "Concurrent update, retry the request", err, http.StatusConflict)
	case errs.Is(err, errs.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)
	case errs.Is(err, errs.ErrDataUnavailable):
		return pkg.NewDomainError("DATA_UNAVAILABLE", "A backing service is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// writeError records err on the context for the logging middleware and
// writes the mapped envelope.
func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	_ = c.Error(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// customerID reads the caller identity set by the upstream gateway. It
// writes 401 and returns false when the header is missing.
func customerID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(HeaderCustomerID))
	if id == "" {
		writeAppError(c, errMissingCustomer)
		return "", false
	}
	return id, true
}

// strictJSON is a gin binding that rejects unknown fields. gin only offers
// this as the process wide binding.EnableDecoderDisallowUnknownFields,
// which would also reject provider webhooks carrying extra fields.
var strictJSON binding.Binding = strictJSONBinding{}

type strictJSONBinding struct{}

func (strictJSONBinding) Name() string { return "strict_json" }

func (strictJSONBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errs.Markf(errs.ErrInvalidInput, "empty body")
	}
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	if binding.Validator == nil {
		return nil
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return errs.Mark(err, errs.ErrInvalidInput)
	}
	return nil
}
