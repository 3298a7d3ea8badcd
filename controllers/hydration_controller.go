package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/services"
)

type HydrationController struct {
	Ledger *services.LedgerService
	Hub    *services.RealtimeHub
}

func NewHydrationController(ledger *services.LedgerService, hub *services.RealtimeHub) *HydrationController {
	return &HydrationController{Ledger: ledger, Hub: hub}
}

type logEventReq struct {
	UnitType models.UnitType `json:"unit_type"`
	EventID  string          `json:"event_id"`
}

// POST /hydration/events
func (hc *HydrationController) LogEvent(c *gin.Context) {
	var req logEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.UnitType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit type"})
		return
	}

	if _, err := hc.Ledger.AppendEvent(c.Request.Context(), req.UnitType, req.EventID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dateKey, today := hc.Ledger.TodayRecord()
	points := hc.Ledger.TodayPoints()
	hc.Hub.Broadcast(gin.H{
		"kind":   "ledger.updated",
		"date":   dateKey,
		"points": points,
		"target": today.Target,
	})
	c.JSON(http.StatusOK, gin.H{
		"date":   dateKey,
		"points": points,
		"target": today.Target,
		"mood":   models.ComputeMood(points, today.Target),
	})
}

// GET /hydration/today
func (hc *HydrationController) GetToday(c *gin.Context) {
	dateKey, today := hc.Ledger.TodayRecord()
	points := hc.Ledger.TodayPoints()
	mood := models.ComputeMood(points, today.Target)
	c.JSON(http.StatusOK, gin.H{
		"date":      dateKey,
		"events":    today.Events,
		"points":    points,
		"target":    today.Target,
		"mood":      mood,
		"moodLabel": models.MoodLabel(mood),
	})
}

// GET /hydration/summaries?days=14
func (hc *HydrationController) GetSummaries(c *gin.Context) {
	days := 14
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, hc.Ledger.DailySummaries(days))
}

// POST /hydration/reset-today
func (hc *HydrationController) ResetToday(c *gin.Context) {
	if err := hc.Ledger.ResetToday(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /hydration/history
func (hc *HydrationController) ClearHistory(c *gin.Context) {
	if err := hc.Ledger.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
