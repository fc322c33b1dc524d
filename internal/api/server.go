// Package api exposes the grocery engine over HTTP. It is a thin
// collaborator: all list semantics live in the engine, and this layer
// only validates input at the boundary and renders results.
package api

import (
	"net/http"

	"pantry/internal/config"
	"pantry/internal/grocery"
	"pantry/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Server wires the engine, metrics and websocket feed into a router.
type Server struct {
	router  *gin.Engine
	builder *grocery.ListBuilder
	metrics *monitoring.Metrics
	cfg     *config.Config
	hub     *hub
}

// NewServer creates the API server and registers all routes.
func NewServer(builder *grocery.ListBuilder, metrics *monitoring.Metrics, cfg *config.Config) *Server {
	s := &Server{
		router:  gin.Default(),
		builder: builder,
		metrics: metrics,
		cfg:     cfg,
		hub:     newHub(),
	}

	s.setupRoutes()
	return s
}

// Router returns the Gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "pantry API is running"})
	})
	s.router.GET("/ws", s.handleWebSocket)

	v1 := s.router.Group("/api/v1")
	if s.cfg.Auth.Enabled {
		v1.Use(AuthMiddleware(s.cfg.Auth.Secret))
	}
	{
		// Purchase recording and rotation
		v1.POST("/purchases", s.RecordPurchase)
		v1.POST("/rotate", s.Rotate)

		// Suggestion queries
		v1.GET("/suggestions", s.GetSuggestions)
		v1.GET("/frequent", s.GetFrequent)

		// Item queries and sensitivity flags
		v1.GET("/items", s.ListItems)
		v1.GET("/items/:name", s.GetItem)
		v1.POST("/items/:name/sensitive", s.MarkSensitive)
		v1.DELETE("/items/:name/sensitive", s.UnmarkSensitive)

		// Categories
		v1.POST("/categories", s.AssignCategory)
		v1.GET("/categories", s.ListCategories)
		v1.GET("/categories/:name/items", s.GetCategoryItems)

		// Week queries
		v1.GET("/weeks", s.ListWeeks)
		v1.GET("/weeks/:week/items", s.GetWeekItems)

		// Bulk import and analysis
		v1.POST("/import", s.Import)
		v1.POST("/analysis/regularity", s.AnalyzeRegularity)

		// Session state
		v1.GET("/state", s.GetState)
		v1.PUT("/state/week", s.SetCurrentWeek)
	}
}
