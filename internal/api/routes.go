package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZinnunMalikov/clipsmart-main/internal/httpserver"
)

// RouteOptions carries the non-handler pieces of the route table.
type RouteOptions struct {
	JWTSecret string
	Health    httpserver.HealthOptions
	Metrics   http.Handler
}

// SetupRoutes registers every route on router.
func SetupRoutes(router *gin.Engine, h *Handler, opts RouteOptions) {
	router.GET("/", h.Welcome)
	httpserver.RegisterHealthRoutes(router, opts.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// Endpoints used by the clipboard client
	router.POST("/process", h.ProcessClipboard)
	router.POST("/process-image", h.ProcessScreenshot)
	router.POST("/create-calendar-event", h.CreateCalendarEvent)

	v1 := router.Group("/api/v1", httpserver.JWTMiddleware(opts.JWTSecret))
	{
		v1.POST("/classify", h.Classify)            // POST /api/v1/classify
		v1.POST("/classify/batch", h.ClassifyBatch) // POST /api/v1/classify/batch
		v1.GET("/requests", h.ListRequests)         // GET /api/v1/requests
	}
}
