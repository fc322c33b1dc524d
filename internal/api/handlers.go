package api

import (
	"net/http"
	"strconv"

	"pantry/internal/grocery"
	"pantry/internal/importer"

	"github.com/gin-gonic/gin"
)

// PurchaseRequest records one purchase, with an optional category
// assignment in the same call.
type PurchaseRequest struct {
	Item     string `json:"item" binding:"required"`
	Week     int    `json:"week" binding:"required"`
	Category string `json:"category,omitempty"`
}

// RotateRequest triggers perishable rotation for a week.
type RotateRequest struct {
	Week int `json:"week" binding:"required"`
}

// CategoryRequest assigns a category to an item.
type CategoryRequest struct {
	Item     string `json:"item" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// WeekRequest sets the current week directly.
type WeekRequest struct {
	Week int `json:"week" binding:"required"`
}

// RecordPurchase handles POST /purchases. Week positivity is enforced
// here: the engine itself is total and records whatever it is given.
func (s *Server) RecordPurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Week <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be a positive integer"})
		return
	}

	s.builder.RecordPurchase(req.Item, req.Week)
	if req.Category != "" {
		s.builder.AssignCategory(req.Item, grocery.Category(req.Category))
	}

	s.metrics.PurchasesRecorded.Inc()
	s.metrics.CurrentWeek.Set(float64(s.builder.CurrentWeek()))
	s.hub.broadcast(Event{Type: "purchase", Item: req.Item, Week: req.Week})

	c.JSON(http.StatusCreated, s.builder.ItemInfo(req.Item))
}

// Rotate handles POST /rotate. Rotated items are re-recorded as fresh
// purchases, so rotating before reading suggestions removes them from
// the due set.
func (s *Server) Rotate(c *gin.Context) {
	var req RotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Week <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be a positive integer"})
		return
	}

	rotated := s.builder.Rotate(req.Week)

	s.metrics.Rotations.Add(float64(len(rotated)))
	s.metrics.PurchasesRecorded.Add(float64(len(rotated)))
	s.metrics.CurrentWeek.Set(float64(s.builder.CurrentWeek()))
	if len(rotated) > 0 {
		s.hub.broadcast(Event{Type: "rotation", Week: req.Week, Items: rotated})
	}

	c.JSON(http.StatusOK, gin.H{"week": req.Week, "rotated": rotated})
}

// GetSuggestions handles GET /suggestions.
func (s *Server) GetSuggestions(c *gin.Context) {
	suggestions := s.builder.Suggestions()
	s.metrics.SuggestionRuns.Inc()

	c.JSON(http.StatusOK, gin.H{
		"current_week": s.builder.CurrentWeek(),
		"suggestions":  suggestions,
	})
}

// GetFrequent handles GET /frequent?limit=n.
func (s *Server) GetFrequent(c *gin.Context) {
	limit := s.cfg.Engine.TopFrequentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{"items": s.builder.TopFrequent(limit)})
}

// ListItems handles GET /items.
func (s *Server) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.builder.Items()})
}

// GetItem handles GET /items/:name. Unknown items still return a view
// with sentinel values rather than a 404; the engine has no notion of
// a missing item, only of empty history.
func (s *Server) GetItem(c *gin.Context) {
	c.JSON(http.StatusOK, s.builder.ItemInfo(c.Param("name")))
}

// MarkSensitive handles POST /items/:name/sensitive.
func (s *Server) MarkSensitive(c *gin.Context) {
	name := c.Param("name")
	s.builder.MarkTimeSensitive(name)
	c.JSON(http.StatusOK, s.builder.ItemInfo(name))
}

// UnmarkSensitive handles DELETE /items/:name/sensitive.
func (s *Server) UnmarkSensitive(c *gin.Context) {
	name := c.Param("name")
	s.builder.UnmarkTimeSensitive(name)
	c.JSON(http.StatusOK, s.builder.ItemInfo(name))
}

// AssignCategory handles POST /categories.
func (s *Server) AssignCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.builder.AssignCategory(req.Item, grocery.Category(req.Category))
	c.JSON(http.StatusOK, s.builder.ItemInfo(req.Item))
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.builder.Categories()})
}

// GetCategoryItems handles GET /categories/:name/items.
func (s *Server) GetCategoryItems(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, gin.H{
		"category": name,
		"items":    s.builder.ItemsInCategory(grocery.Category(name)),
	})
}

// ListWeeks handles GET /weeks.
func (s *Server) ListWeeks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"weeks": s.builder.Weeks()})
}

// GetWeekItems handles GET /weeks/:week/items.
func (s *Server) GetWeekItems(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"week": week, "items": s.builder.WeeklyItems(week)})
}

// Import handles POST /import. The body is the raw history file,
// comma- or semicolon-delimited with a header row; the response reports
// accepted rows and per-line failures.
func (s *Server) Import(c *gin.Context) {
	report, err := importer.Import(c.Request.Body, s.builder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.metrics.ImportRows.Add(float64(report.Records))
	s.metrics.ImportErrors.Add(float64(len(report.Errors)))
	s.metrics.PurchasesRecorded.Add(float64(report.Records))
	s.metrics.CurrentWeek.Set(float64(s.builder.CurrentWeek()))

	c.JSON(http.StatusOK, report)
}

// AnalyzeRegularity handles POST /analysis/regularity. The body is a
// history file in import format; the response ranks items by how
// steady their purchase cadence is, as a hint for marking perishables.
func (s *Server) AnalyzeRegularity(c *gin.Context) {
	scores, err := importer.AnalyzeRegularity(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scores": importer.RankScores(scores)})
}

// GetState handles GET /state.
func (s *Server) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.builder.Snapshot())
}

// SetCurrentWeek handles PUT /state/week.
func (s *Server) SetCurrentWeek(c *gin.Context) {
	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Week <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be a positive integer"})
		return
	}

	s.builder.SetCurrentWeek(req.Week)
	s.metrics.CurrentWeek.Set(float64(req.Week))
	c.JSON(http.StatusOK, gin.H{"current_week": req.Week})
}
