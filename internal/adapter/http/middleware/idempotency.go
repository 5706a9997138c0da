package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotencyReplayed = "Idempotency-Replayed"

	maxIdempotencyKeyLen = 255
)

var (
	errIdempotencyKeyInvalid  = pkg.NewDomainErrorSimple("INVALID_INPUT", "Idempotency-Key must be 1-255 characters", http.StatusBadRequest)
	errIdempotencyKeyReused   = pkg.NewDomainErrorSimple("IDEMPOTENCY_KEY_REUSED", "Idempotency-Key already used with a different request", http.StatusConflict)
	errIdempotencyInProgress  = pkg.NewDomainErrorSimple("IDEMPOTENCY_IN_PROGRESS", "A request with this Idempotency-Key is still being processed", http.StatusConflict)
	errIdempotencyUnavailable = pkg.NewDomainErrorSimple("DATA_UNAVAILABLE", "Idempotency store unavailable", http.StatusServiceUnavailable)
)

// Idempotency replays the first response recorded for an Idempotency-Key.
// Keys are scoped per route and caller (identified by identityHeader). The
// fingerprint covers the caller and the raw body, so the same key with a
// different payload is rejected. Requests without the header pass through.
type Idempotency struct {
	store          interfaces.IIdempotencyStore
	ttl            time.Duration
	identityHeader string
	logger         *slog.Logger
}

func NewIdempotency(store interfaces.IIdempotencyStore, ttl time.Duration, identityHeader string, logger *slog.Logger) *Idempotency {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Idempotency{store: store, ttl: ttl, identityHeader: identityHeader, logger: logger}
}

func (m *Idempotency) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
		if key == "" || m.store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			abortWith(c, errIdempotencyKeyInvalid)
			return
		}
		identity := strings.TrimSpace(c.GetHeader(m.identityHeader))
		if identity == "" {
			// The handler rejects anonymous callers.
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWith(c, pkg.NewDomainErrorSimple("INVALID_INPUT", "Invalid request payload", http.StatusBadRequest))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		scope := c.Request.Method + " " + c.FullPath() + ":" + identity
		fp := fingerprint(identity, body)

		begun, err := m.store.Begin(ctx, scope, key, fp, m.ttl)
		if err != nil {
			m.logger.Error("[idempotency][middleware] begin failed", "scope", scope, "error", err)
			abortWith(c, errIdempotencyUnavailable)
			return
		}

		switch begun.State {
		case interfaces.IdempotencyStateReplay:
			if begun.Cached != nil {
				m.logger.Info("[idempotency][middleware] replaying response", "scope", scope, "status", begun.Cached.StatusCode)
				c.Header(HeaderIdempotencyReplayed, "true")
				c.Data(begun.Cached.StatusCode, begun.Cached.ContentType, begun.Cached.Body)
				c.Abort()
				return
			}
			abortWith(c, errIdempotencyInProgress)
			return
		case interfaces.IdempotencyStateConflict:
			abortWith(c, errIdempotencyKeyReused)
			return
		case interfaces.IdempotencyStateInProgress:
			abortWith(c, errIdempotencyInProgress)
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec

		// The request context may already be cancelled once the handler returned.
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		finished := false
		defer func() {
			// A panicking handler never reaches the code below c.Next; free the
			// key so the client can retry once recovery has answered 500.
			if !finished {
				m.release(storeCtx, scope, key, fp)
			}
		}()

		c.Next()
		finished = true

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			m.release(storeCtx, scope, key, fp)
			return
		}
		cached := interfaces.CachedHTTPResponse{
			StatusCode:  status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := m.store.Complete(storeCtx, scope, key, fp, cached, m.ttl); err != nil {
			m.logger.Warn("[idempotency][middleware] complete failed", "scope", scope, "error", err)
		}
	}
}

func (m *Idempotency) release(ctx context.Context, scope, key, fp string) {
	if err := m.store.Release(ctx, scope, key, fp); err != nil {
		m.logger.Warn("[idempotency][middleware] release failed", "scope", scope, "error", err)
	}
}

func fingerprint(identity string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(identity))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// recordingWriter tees the response body so it can be stored for replay.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
