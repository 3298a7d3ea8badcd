package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LearnGrowCode/water-timeout-backend/services"
)

type NotificationController struct {
	Dispatcher *services.Dispatcher
}

func NewNotificationController(d *services.Dispatcher) *NotificationController {
	return &NotificationController{Dispatcher: d}
}

// POST /notifications/respond
// The client reports a tapped notification or action button. Action
// identifiers are unit types; the response handler appends to the ledger
// using the notification id, so re-delivery is a no-op.
func (nc *NotificationController) Respond(c *gin.Context) {
	var req services.Response
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NotificationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId required"})
		return
	}
	nc.Dispatcher.HandleResponse(req)
	c.Status(http.StatusNoContent)
}

// GET /notifications/pending
func (nc *NotificationController) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, nc.Dispatcher.Pending())
}

type testReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// POST /notifications/test
// Schedules one notification a few seconds out so delivery sinks can be
// verified end to end.
func (nc *NotificationController) Test(c *gin.Context) {
	var req testReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "Test reminder 🔔"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}

	id, err := nc.Dispatcher.Schedule(services.Notification{
		Title:    req.Title,
		Body:     req.Body,
		Category: services.ReminderCategory,
		Channel:  services.ChannelDefault,
		Kind:     "reminder",
		FireAt:   time.Now().Add(5 * time.Second),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
