package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/LearnGrowCode/water-timeout-backend/controllers"
)

func SetupRouter(
	hc *controllers.HydrationController,
	sc *controllers.SettingsController,
	nc *controllers.NotificationController,
	dc *controllers.DeviceController,
	rc *controllers.RealtimeController,
) *gin.Engine {
	r := gin.Default()

	hydration := r.Group("/hydration")
	{
		hydration.POST("/events", hc.LogEvent)
		hydration.GET("/today", hc.GetToday)
		hydration.GET("/summaries", hc.GetSummaries)
		hydration.POST("/reset-today", hc.ResetToday)
		hydration.DELETE("/history", hc.ClearHistory)
	}

	settings := r.Group("/settings")
	{
		settings.GET("", sc.Get)
		settings.PATCH("", sc.Patch)
		settings.POST("/actions/toggle", sc.ToggleAction)
	}

	notifications := r.Group("/notifications")
	{
		notifications.POST("/respond", nc.Respond)
		notifications.GET("/pending", nc.Pending)
		notifications.POST("/test", nc.Test)
	}

	devices := r.Group("/devices")
	{
		devices.POST("", dc.Register)
		devices.POST("/toggle", dc.Toggle)
	}

	r.GET("/ws", rc.UpdatesWS)

	return r
}
