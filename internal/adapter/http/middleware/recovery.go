package middleware

import (
	"log/slog"
	"net/http"

	"qutlas/pkg"

	"github.com/gin-gonic/gin"
)

var errInternal = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)

// CustomRecovery turns a panic into the standard error envelope. Register it
// first so it wraps every other middleware.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path, "request_id", GetRequestID(c))
				c.AbortWithStatusJSON(errInternal.HTTPStatus, errInternal.ToHTTPError())
			}
		}()
		c.Next()
	}
}
