package routes

import (
	"log/slog"
	"net/http"

	_ "qutlas/docs"
	"qutlas/internal/adapter/http/handlers"
	"qutlas/internal/adapter/http/middleware"
	"qutlas/internal/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathV1       = "/v1"
	PathQuotes   = "/quotes"
	PathHubs     = "/hubs"
	PathJobs     = "/jobs"
	PathPayments = "/payments"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	quoteHandler *handlers.QuoteHandler,
	hubHandler *handlers.HubHandler,
	jobHandler *handlers.JobHandler,
	paymentHandler *handlers.PaymentHandler,
	idempotency *middleware.Idempotency,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, quoteHandler, hubHandler, jobHandler, paymentHandler, idempotency)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
}

func setupRoutes(
	engine *gin.Engine,
	quoteHandler *handlers.QuoteHandler,
	hubHandler *handlers.HubHandler,
	jobHandler *handlers.JobHandler,
	paymentHandler *handlers.PaymentHandler,
	idempotency *middleware.Idempotency,
) {
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := engine.Group(PathV1)
	addRoutes(v1, []route{
		{Method: http.MethodGet, Path: "/ping", Handler: ping},
	})

	addRoutes(v1.Group(PathQuotes), []route{
		{Method: http.MethodPost, Path: "", Handler: quoteHandler.CreateQuote},
		{Method: http.MethodGet, Path: "/:id", Handler: quoteHandler.GetQuote},
	})

	addRoutes(v1.Group(PathHubs), []route{
		{Method: http.MethodGet, Path: "", Handler: hubHandler.ListHubs},
		{Method: http.MethodPost, Path: "/match", Handler: hubHandler.MatchHubs},
	})

	var submitMw []gin.HandlerFunc
	if idempotency != nil {
		submitMw = append(submitMw, idempotency.Handle())
	}
	addRoutes(v1.Group(PathJobs), []route{
		{Method: http.MethodPost, Path: "", Handler: jobHandler.SubmitJob, Mw: submitMw},
		{Method: http.MethodGet, Path: "", Handler: jobHandler.ListJobs},
		{Method: http.MethodGet, Path: "/:id", Handler: jobHandler.GetJob},
		{Method: http.MethodPatch, Path: "/:id", Handler: jobHandler.UpdateJob},
		{Method: http.MethodPost, Path: "/:id/cancel", Handler: jobHandler.CancelJob},
		{Method: http.MethodPost, Path: "/:id/acknowledge", Handler: jobHandler.AcknowledgeJob},
		{Method: http.MethodPatch, Path: "/:id/progress", Handler: jobHandler.ReportProgress},
		{Method: http.MethodPost, Path: "/:id/payments", Handler: jobHandler.InitializePayment},
	})

	addRoutes(v1.Group(PathPayments), []route{
		{Method: http.MethodPost, Path: "/webhook", Handler: paymentHandler.Webhook},
		{Method: http.MethodGet, Path: "/verify", Handler: paymentHandler.Verify},
	})
}

// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		hs := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, hs...)
		case http.MethodPost:
			g.POST(r.Path, hs...)
		case http.MethodPut:
			g.PUT(r.Path, hs...)
		case http.MethodPatch:
			g.PATCH(r.Path, hs...)
		case http.MethodDelete:
			g.DELETE(r.Path, hs...)
		default:
			g.Any(r.Path, hs...)
		}
	}
}
