package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/storage"
)

func newTestLedger(t *testing.T) (*LedgerService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	l := NewLedgerService(store)
	l.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	}
	seq := 0
	l.newID = func() string {
		seq++
		return fmt.Sprintf("gen-%d", seq)
	}
	return l, store
}

func TestAppendEventSumsPoints(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	// default settings: ml, sip 25, bottle 500
	_, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)
	_, err = l.AppendEvent(ctx, models.UnitQuarter, "")
	require.NoError(t, err)
	_, err = l.AppendEvent(ctx, models.UnitFull, "")
	require.NoError(t, err)

	require.Equal(t, 25.0+125.0+500.0, l.TodayPoints())
}

func TestAppendEventIdempotentOnExternalID(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	first, err := l.AppendEvent(ctx, models.UnitHalf, "notif-abc")
	require.NoError(t, err)
	second, err := l.AppendEvent(ctx, models.UnitHalf, "notif-abc")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 250.0, l.TodayPoints())
}

func TestAppendEventDistinctGeneratedIDs(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)
	days, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)

	today := days[models.DateKey(l.now())]
	require.Len(t, today.Events, 2)
	require.NotEqual(t, today.Events[0].ID, today.Events[1].ID)
	require.Equal(t, 50.0, l.TodayPoints())
}

func TestAppendEventSnapshotsTarget(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	days, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)
	require.Equal(t, 2000.0, days[models.DateKey(l.now())].Target)

	raw, found, err := store.Get(ctx, models.LedgerKey)
	require.NoError(t, err)
	require.True(t, found)
	var persisted map[string]models.DayRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Equal(t, 2000.0, persisted[models.DateKey(l.now())].Target)
}

func TestUpdateSettingsTargetPatchesOnlyToday(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	// yesterday recorded under the old target
	yesterday := models.DateKey(l.now().AddDate(0, 0, -1))
	l.days[yesterday] = models.DayRecord{
		Events: []models.IntakeEvent{{ID: "y1", Timestamp: 1, UnitType: models.UnitFull}},
		Target: 2000,
	}
	require.NoError(t, l.saveDays(ctx, l.days))
	_, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)

	target := 3000.0
	updated := l.UpdateSettings(ctx, models.SettingsPatch{DailyTarget: &target})
	require.Equal(t, 3000.0, updated.DailyTarget)

	today := models.DateKey(l.now())
	require.Equal(t, 3000.0, l.days[today].Target)
	require.Equal(t, 2000.0, l.days[yesterday].Target)

	raw, found, err := store.Get(ctx, models.SettingsKey)
	require.NoError(t, err)
	require.True(t, found)
	var persisted models.HydrationSettings
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Equal(t, 3000.0, persisted.DailyTarget)
}

func TestResetTodayLeavesOtherDaysUntouched(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	yesterday := models.DateKey(l.now().AddDate(0, 0, -1))
	l.days[yesterday] = models.DayRecord{
		Events: []models.IntakeEvent{{ID: "y1", Timestamp: 1, UnitType: models.UnitHalf}},
		Target: 1500,
	}
	require.NoError(t, l.saveDays(ctx, l.days))
	_, err := l.AppendEvent(ctx, models.UnitFull, "")
	require.NoError(t, err)

	require.NoError(t, l.ResetToday(ctx))
	require.Equal(t, 0.0, l.TodayPoints())

	raw, found, err := store.Get(ctx, models.LedgerKey)
	require.NoError(t, err)
	require.True(t, found)
	var persisted map[string]models.DayRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.NotContains(t, persisted, models.DateKey(l.now()))
	require.Equal(t, l.days[yesterday], persisted[yesterday])
}

func TestClearHistoryErasesPersistedRecord(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)
	require.NoError(t, l.ClearHistory(ctx))

	_, found, err := store.Get(ctx, models.LedgerKey)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 0.0, l.TodayPoints())
}

func TestDailySummariesShape(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.AppendEvent(ctx, models.UnitQuarter, "")
	require.NoError(t, err)

	summaries := l.DailySummaries(14)
	require.Len(t, summaries, 14)
	require.Equal(t, models.DateKey(l.now()), summaries[0].Date)
	require.Equal(t, 125.0, summaries[0].TotalPoints)

	// untracked days are empty current-target placeholders
	require.Empty(t, summaries[1].Events)
	require.Equal(t, 0.0, summaries[1].TotalPoints)
	require.Equal(t, 2000.0, summaries[1].Target)
	require.Equal(t, models.DateKey(l.now().AddDate(0, 0, -13)), summaries[13].Date)
}

func TestDailySummariesDoNotPersistPlaceholders(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	l.DailySummaries(14)
	_, found, err := store.Get(ctx, models.LedgerKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestLoadMigratesLegacyFlatArrays(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	legacy := `{"2026-08-29":[{"id":"a","timestamp":10,"unitType":"sip"}],` +
		`"2026-08-30":{"events":[{"id":"b","timestamp":20,"unitType":"full"}],"target":1800}}`
	require.NoError(t, store.Set(ctx, models.LedgerKey, legacy))

	l.Load(ctx)

	old := l.days["2026-08-29"]
	require.Len(t, old.Events, 1)
	require.Equal(t, models.UnitSip, old.Events[0].UnitType)
	require.Equal(t, 2000.0, old.Target) // fallback target from settings

	cur := l.days["2026-08-30"]
	require.Equal(t, 1800.0, cur.Target)
	require.Equal(t, "b", cur.Events[0].ID)
}

func TestLedgerRoundTripAfterMigration(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	legacy := `{"2026-08-28":[{"id":"a","timestamp":10,"unitType":"half"}]}`
	require.NoError(t, store.Set(ctx, models.LedgerKey, legacy))
	l.Load(ctx)

	// appending persists the migrated shape
	_, err := l.AppendEvent(ctx, models.UnitSip, "")
	require.NoError(t, err)

	raw, _, err := store.Get(ctx, models.LedgerKey)
	require.NoError(t, err)
	migrated, err := migrateLedger([]byte(raw), 2000)
	require.NoError(t, err)
	require.Equal(t, l.days, migrated)
}

func TestLoadDegradesToDefaultsOnFailure(t *testing.T) {
	store := &failingStore{}
	l := NewLedgerService(store)
	l.Load(context.Background())

	require.Equal(t, models.DefaultSettings(), l.Settings())
	require.Empty(t, l.days)
}

func TestAppendEventReturnsPersistenceError(t *testing.T) {
	l, _ := newTestLedger(t)
	l.store = &failingStore{}

	_, err := l.AppendEvent(context.Background(), models.UnitSip, "")
	require.Error(t, err)
}

type failingStore struct{}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func (f *failingStore) Set(context.Context, string, string) error {
	return errors.New("store unavailable")
}

func (f *failingStore) Remove(context.Context, string) error {
	return errors.New("store unavailable")
}
