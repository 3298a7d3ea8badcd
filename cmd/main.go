package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/LearnGrowCode/water-timeout-backend/config"
	"github.com/LearnGrowCode/water-timeout-backend/controllers"
	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/routes"
	"github.com/LearnGrowCode/water-timeout-backend/services"
	"github.com/LearnGrowCode/water-timeout-backend/utils"
)

func main() {
	config.Load()
	store := config.InitStore()

	ctx := context.Background()

	ledger := services.NewLedgerService(store)
	ledger.Load(ctx)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(store)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	push.LoadDevices(ctx)

	mail := &services.MailSink{To: os.Getenv("SUMMARY_EMAIL")}
	dispatcher := services.NewDispatcher(hub, push, mail)
	scheduler := services.NewReminderScheduler(dispatcher)

	scheduler.SummaryBody = func() string {
		points := ledger.TodayPoints()
		_, today := ledger.TodayRecord()
		s := ledger.Settings()
		mood := models.ComputeMood(points, today.Target)
		return fmt.Sprintf("You logged %s of %s today. %s",
			utils.FormatValue(points, s.IntakeUnit),
			utils.FormatValue(today.Target, s.IntakeUnit),
			models.MoodLabel(mood))
	}

	// Notification responses append through the same idempotent path the
	// app uses, keyed by notification id so re-delivery cannot double-count.
	dispatcher.OnResponse(func(r services.Response) {
		unit := models.UnitType(r.ActionIdentifier)
		if !unit.Valid() {
			return
		}
		if _, err := ledger.AppendEvent(ctx, unit, r.NotificationID); err != nil {
			log.Printf("failed to log notification response: %v", err)
			return
		}
		dispatcher.Dismiss(r.NotificationID)
		_, today := ledger.TodayRecord()
		hub.Broadcast(map[string]any{
			"kind":   "ledger.updated",
			"points": ledger.TodayPoints(),
			"target": today.Target,
		})
	})

	if err := scheduler.Apply(ledger.Settings()); err != nil {
		log.Printf("initial reminder schedule failed: %v", err)
	}

	r := routes.SetupRouter(
		controllers.NewHydrationController(ledger, hub),
		controllers.NewSettingsController(ledger, scheduler),
		controllers.NewNotificationController(dispatcher),
		controllers.NewDeviceController(push),
		controllers.NewRealtimeController(hub),
	)
	r.Run(":8080")
}
