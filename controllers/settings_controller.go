package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/services"
)

// SettingsController is also the coordinator between the ledger and the
// scheduler: a patch touching any reminder-relevant field triggers a full
// cancel-and-rebuild of the pending notification set.
type SettingsController struct {
	Ledger    *services.LedgerService
	Scheduler *services.ReminderScheduler
}

func NewSettingsController(ledger *services.LedgerService, scheduler *services.ReminderScheduler) *SettingsController {
	return &SettingsController{Ledger: ledger, Scheduler: scheduler}
}

// GET /settings
func (sc *SettingsController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Ledger.Settings())
}

// PATCH /settings
func (sc *SettingsController) Patch(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.NotificationActions != nil {
		n := len(*patch.NotificationActions)
		if n < 1 || n > models.MaxNotificationActions {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notificationActions must keep 1 to 3 units"})
			return
		}
		for _, u := range *patch.NotificationActions {
			if !u.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit type"})
				return
			}
		}
	}

	updated := sc.Ledger.UpdateSettings(c.Request.Context(), patch)

	if touchesReminders(patch) {
		if err := sc.Scheduler.Apply(updated); err != nil {
			log.Printf("[settings] reschedule failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, updated)
}

type toggleActionReq struct {
	UnitType models.UnitType `json:"unit_type"`
}

// POST /settings/actions/toggle
func (sc *SettingsController) ToggleAction(c *gin.Context) {
	var req toggleActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.UnitType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit type"})
		return
	}
	updated := sc.Ledger.ToggleNotificationAction(c.Request.Context(), req.UnitType)
	c.JSON(http.StatusOK, gin.H{"notificationActions": updated.NotificationActions})
}

// touchesReminders reports whether the patch changes anything the pending
// notification set depends on.
func touchesReminders(p models.SettingsPatch) bool {
	return p.RemindersEnabled != nil ||
		p.ReminderFrequency != nil ||
		p.ActiveWindowStart != nil ||
		p.ActiveWindowEnd != nil ||
		p.Tone != nil ||
		p.DailySummary != nil ||
		p.SoundOverrideEnabled != nil
}
