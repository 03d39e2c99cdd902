package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wefi-dex/otterai-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	webhookHandler      *Webhook
	salesCallHandler    *SalesCall
	organizationHandler *Organization
	userHandler         *User
	notificationHandler *Notification
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	webhookHandler *Webhook,
	salesCallHandler *SalesCall,
	organizationHandler *Organization,
	userHandler *User,
	notificationHandler *Notification,
) *Router {
	return &Router{
		cfg:                 cfg,
		webhookHandler:      webhookHandler,
		salesCallHandler:    salesCallHandler,
		organizationHandler: organizationHandler,
		userHandler:         userHandler,
		notificationHandler: notificationHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupWebhookRoutes(v1)
	rt.setupSalesCallRoutes(v1)
	rt.setupOrganizationRoutes(v1)
	rt.setupUserRoutes(v1)
	rt.setupNotificationRoutes(v1)
}

// setupWebhookRoutes configures ingestion routes. The zapier path is the
// original route shape kept for callers configured before the rename.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	g.POST("/webhooks/external-analysis", rt.webhookHandler.Analyze)
	g.POST("/zapier/actions/otterai-analyze", rt.webhookHandler.Analyze)
}

// setupSalesCallRoutes configures sales call routes
func (rt *Router) setupSalesCallRoutes(g *echo.Group) {
	calls := g.Group("/sales-calls")
	calls.POST("", rt.salesCallHandler.Create)
	calls.GET("", rt.salesCallHandler.List)
	calls.GET("/:id", rt.salesCallHandler.Get)
	calls.PATCH("/:id", rt.salesCallHandler.Update)
	calls.DELETE("/:id", rt.salesCallHandler.Delete)
	calls.POST("/:id/transcribe", rt.salesCallHandler.Transcribe)
	calls.GET("/transcriptions/:speechId", rt.salesCallHandler.TranscriptionStatus)
	calls.GET("/:id/analytics", rt.salesCallHandler.Analytics)
}

// setupOrganizationRoutes configures organization routes
func (rt *Router) setupOrganizationRoutes(g *echo.Group) {
	orgs := g.Group("/organizations")
	orgs.POST("", rt.organizationHandler.Create)
	orgs.GET("", rt.organizationHandler.List)
	orgs.GET("/:id", rt.organizationHandler.Get)
	orgs.PATCH("/:id", rt.organizationHandler.Update)
	orgs.DELETE("/:id", rt.organizationHandler.Delete)
}

// setupUserRoutes configures user routes
func (rt *Router) setupUserRoutes(g *echo.Group) {
	users := g.Group("/users")
	users.POST("", rt.userHandler.Create)
	users.GET("", rt.userHandler.List)
	users.GET("/:id", rt.userHandler.Get)
	users.PATCH("/:id", rt.userHandler.Update)
	users.DELETE("/:id", rt.userHandler.Delete)
	users.GET("/:id/notifications", rt.notificationHandler.ListByUser)
}

// setupNotificationRoutes configures notification routes
func (rt *Router) setupNotificationRoutes(g *echo.Group) {
	notifications := g.Group("/notifications")
	notifications.POST("/:id/read", rt.notificationHandler.MarkRead)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
