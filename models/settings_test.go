package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPatchMergesOnlySetFields(t *testing.T) {
	s := DefaultSettings()
	target := 2500.0
	tone := ToneNeutral
	patch := SettingsPatch{DailyTarget: &target, Tone: &tone}

	merged := s.Apply(patch)
	require.Equal(t, 2500.0, merged.DailyTarget)
	require.Equal(t, ToneNeutral, merged.Tone)

	// untouched fields survive
	require.Equal(t, s.ReminderFrequency, merged.ReminderFrequency)
	require.Equal(t, s.ActiveWindowStart, merged.ActiveWindowStart)
	require.Equal(t, s.BottleType, merged.BottleType)

	// original is not mutated
	require.Equal(t, 2000.0, s.DailyTarget)
}

func TestApplyPatchCopiesActionSlice(t *testing.T) {
	s := DefaultSettings()
	actions := []UnitType{UnitSip}
	merged := s.Apply(SettingsPatch{NotificationActions: &actions})
	actions[0] = UnitFull
	require.Equal(t, []UnitType{UnitSip}, merged.NotificationActions)
}

func TestToggleNotificationActionFIFO(t *testing.T) {
	s := DefaultSettings() // quarter, half, full
	s.ToggleNotificationAction(UnitSip)
	require.Equal(t, []UnitType{UnitHalf, UnitFull, UnitSip}, s.NotificationActions)
}

func TestToggleNotificationActionRemove(t *testing.T) {
	s := DefaultSettings()
	s.ToggleNotificationAction(UnitHalf)
	require.Equal(t, []UnitType{UnitQuarter, UnitFull}, s.NotificationActions)
}

func TestToggleNotificationActionKeepsLast(t *testing.T) {
	s := DefaultSettings()
	s.NotificationActions = []UnitType{UnitFull}
	s.ToggleNotificationAction(UnitFull)
	require.Equal(t, []UnitType{UnitFull}, s.NotificationActions)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.DailyTarget = 1800
	s.Tone = ToneNeutral
	s.NotificationActions = []UnitType{UnitSip, UnitFull}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back HydrationSettings
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, s, back)
}
