package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/storage"
	"github.com/LearnGrowCode/water-timeout-backend/utils"
)

// LedgerService owns the day-keyed intake log and the global settings
// object. Every mutating operation runs under one mutex so that two
// near-simultaneous appends (a client tap racing a notification response)
// cannot lose each other's read-modify-write cycle.
type LedgerService struct {
	store storage.Store

	mu       sync.Mutex
	days     map[string]models.DayRecord
	settings models.HydrationSettings

	now   func() time.Time
	newID func() string
}

func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{
		store:    store,
		days:     make(map[string]models.DayRecord),
		settings: models.DefaultSettings(),
		now:      time.Now,
		newID:    func() string { return utils.GenerateRandomToken(9) },
	}
}

// Load pulls both persisted records into memory, upgrading any legacy
// flat-array day entries to the {events, target} shape. Read failures
// degrade to defaults instead of blocking startup.
func (l *LedgerService) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if raw, found, err := l.store.Get(ctx, models.SettingsKey); err != nil {
		log.Printf("[hydration] failed to load settings: %v", err)
	} else if found {
		merged := models.DefaultSettings()
		if err := json.Unmarshal([]byte(raw), &merged); err != nil {
			log.Printf("[hydration] malformed settings record: %v", err)
		} else {
			l.settings = merged
		}
	}

	if raw, found, err := l.store.Get(ctx, models.LedgerKey); err != nil {
		log.Printf("[hydration] failed to load ledger: %v", err)
	} else if found {
		days, err := migrateLedger([]byte(raw), l.settings.DailyTarget)
		if err != nil {
			log.Printf("[hydration] malformed ledger record: %v", err)
		} else {
			l.days = days
		}
	}
}

// migrateLedger decodes the persisted date→record map. Entries written by
// older versions are plain event arrays; those are lifted into records with
// the fallback target. Idempotent: already-migrated entries pass through.
func migrateLedger(raw []byte, fallbackTarget float64) (map[string]models.DayRecord, error) {
	var rawDays map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawDays); err != nil {
		return nil, err
	}
	days := make(map[string]models.DayRecord, len(rawDays))
	for key, val := range rawDays {
		if len(val) > 0 && val[0] == '[' {
			var events []models.IntakeEvent
			if err := json.Unmarshal(val, &events); err != nil {
				return nil, err
			}
			days[key] = models.DayRecord{Events: events, Target: fallbackTarget}
			continue
		}
		var rec models.DayRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return nil, err
		}
		if rec.Events == nil {
			rec.Events = []models.IntakeEvent{}
		}
		days[key] = rec
	}
	return days, nil
}

// AppendEvent logs one intake event for today and persists the whole map
// back. When externalID is supplied (notification responses) and an event
// with that id already exists for today, the call is a silent no-op so that
// re-delivered responses never double-count. Returns the updated map.
func (l *LedgerService) AppendEvent(ctx context.Context, unit models.UnitType, externalID string) (map[string]models.DayRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := externalID
	if id == "" {
		id = l.newID()
	}
	dateKey := models.DateKey(l.now())

	// Re-read persisted state so a write from a previous process image is
	// never clobbered; the mutex makes the read-modify-write atomic here.
	days, err := l.loadDays(ctx)
	if err != nil {
		log.Printf("[hydration] failed to read ledger before append: %v", err)
		return nil, err
	}

	today, ok := days[dateKey]
	if !ok {
		today = models.DayRecord{Events: []models.IntakeEvent{}, Target: l.settings.DailyTarget}
	}

	if externalID != "" {
		for _, e := range today.Events {
			if e.ID == externalID {
				log.Printf("[hydration] duplicate event id %s, skipping", externalID)
				l.days = days
				return snapshotDays(days), nil
			}
		}
	}

	today.Events = append(today.Events, models.IntakeEvent{
		ID:        id,
		Timestamp: l.now().UnixMilli(),
		UnitType:  unit,
	})
	days[dateKey] = today

	if err := l.saveDays(ctx, days); err != nil {
		log.Printf("[hydration] failed to persist event %s: %v", id, err)
		return nil, err
	}
	l.days = days
	log.Printf("[hydration] logged event %s (%s)", id, unit)
	return snapshotDays(days), nil
}

// UpdateSettings merges the patch, persists the result, and — when the daily
// target changed — re-snapshots today's record target. Historic days keep
// the target they were recorded under. Persistence failures here are logged
// and swallowed; the in-memory state is already updated.
func (l *LedgerService) UpdateSettings(ctx context.Context, patch models.SettingsPatch) models.HydrationSettings {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings = l.settings.Apply(patch)
	if raw, err := json.Marshal(l.settings); err != nil {
		log.Printf("[hydration] failed to encode settings: %v", err)
	} else if err := l.store.Set(ctx, models.SettingsKey, string(raw)); err != nil {
		log.Printf("[hydration] failed to persist settings: %v", err)
	}

	if patch.DailyTarget != nil {
		dateKey := models.DateKey(l.now())
		today, ok := l.days[dateKey]
		if !ok {
			today = models.DayRecord{Events: []models.IntakeEvent{}}
		}
		today.Target = l.settings.DailyTarget
		l.days[dateKey] = today
		if err := l.saveDays(ctx, l.days); err != nil {
			log.Printf("[hydration] failed to persist target change: %v", err)
		}
	}
	return l.settings
}

// ClearHistory drops every day record and erases the persisted map.
func (l *LedgerService) ClearHistory(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.days = make(map[string]models.DayRecord)
	return l.store.Remove(ctx, models.LedgerKey)
}

// ResetToday deletes only today's record; earlier days stay untouched.
func (l *LedgerService) ResetToday(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.days, models.DateKey(l.now()))
	return l.saveDays(ctx, l.days)
}

// TodayPoints sums the unit value of every event logged today, in the
// active measurement unit.
func (l *LedgerService) TodayPoints() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	today := l.days[models.DateKey(l.now())]
	var sum float64
	for _, e := range today.Events {
		sum += models.UnitValue(e.UnitType, l.settings)
	}
	return sum
}

// TodayRecord returns today's record, or an empty placeholder carrying the
// current target when nothing has been logged yet.
func (l *LedgerService) TodayRecord() (string, models.DayRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dateKey := models.DateKey(l.now())
	today, ok := l.days[dateKey]
	if !ok {
		today = models.DayRecord{Events: []models.IntakeEvent{}, Target: l.settings.DailyTarget}
	}
	return dateKey, today
}

// DailySummaries derives the most recent n days ending today, most-recent
// first. Days without a record become empty current-target placeholders;
// placeholders are never persisted.
func (l *LedgerService) DailySummaries(days int) []models.DailySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summaries := make([]models.DailySummary, 0, days)
	for i := 0; i < days; i++ {
		date := l.now().AddDate(0, 0, -i)
		dateKey := models.DateKey(date)
		rec, ok := l.days[dateKey]
		if !ok {
			rec = models.DayRecord{Events: []models.IntakeEvent{}, Target: l.settings.DailyTarget}
		}
		var total float64
		for _, e := range rec.Events {
			total += models.UnitValue(e.UnitType, l.settings)
		}
		summaries = append(summaries, models.DailySummary{
			Date:        dateKey,
			Events:      rec.Events,
			TotalPoints: total,
			Target:      rec.Target,
		})
	}
	return summaries
}

// Settings returns a copy of the current settings.
func (l *LedgerService) Settings() models.HydrationSettings {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.settings
	s.NotificationActions = append([]models.UnitType(nil), s.NotificationActions...)
	return s
}

// ToggleNotificationAction flips one quick-action unit, keeping the 1..3
// bound with FIFO eviction, and persists the result.
func (l *LedgerService) ToggleNotificationAction(ctx context.Context, unit models.UnitType) models.HydrationSettings {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.ToggleNotificationAction(unit)
	if raw, err := json.Marshal(l.settings); err != nil {
		log.Printf("[hydration] failed to encode settings: %v", err)
	} else if err := l.store.Set(ctx, models.SettingsKey, string(raw)); err != nil {
		log.Printf("[hydration] failed to persist settings: %v", err)
	}
	return l.settings
}

func (l *LedgerService) loadDays(ctx context.Context) (map[string]models.DayRecord, error) {
	raw, found, err := l.store.Get(ctx, models.LedgerKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return make(map[string]models.DayRecord), nil
	}
	return migrateLedger([]byte(raw), l.settings.DailyTarget)
}

func (l *LedgerService) saveDays(ctx context.Context, days map[string]models.DayRecord) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, models.LedgerKey, string(raw))
}

func snapshotDays(days map[string]models.DayRecord) map[string]models.DayRecord {
	out := make(map[string]models.DayRecord, len(days))
	for k, v := range days {
		out[k] = v
	}
	return out
}
