package models

// Tone selects which reminder phrase list is used.
type Tone string

const (
	TonePlayful Tone = "playful"
	ToneNeutral Tone = "neutral"
)

// IntakeUnit is the measurement unit intake values are expressed in.
type IntakeUnit string

const (
	IntakeUnitPoints IntakeUnit = "points"
	IntakeUnitML     IntakeUnit = "ml"
	IntakeUnitOZ     IntakeUnit = "oz"
)

// MaxNotificationActions bounds how many quick-action units a reminder
// notification carries.
const MaxNotificationActions = 3

// HydrationSettings is the single global configuration object. It is
// persisted wholesale on every mutation.
type HydrationSettings struct {
	RemindersEnabled     bool       `json:"remindersEnabled"`
	ReminderFrequency    int        `json:"reminderFrequency"` // minutes
	ActiveWindowStart    string     `json:"activeWindowStart"` // "08:00"
	ActiveWindowEnd      string     `json:"activeWindowEnd"`   // "20:00"
	Tone                 Tone       `json:"tone"`
	SoundEnabled         bool       `json:"soundEnabled"`
	DailySummary         bool       `json:"dailySummary"`
	DailyTarget          float64    `json:"dailyTarget"`
	BottleType           string     `json:"bottleType"`
	SipSizeML            float64    `json:"sipSizeML"`
	IntakeUnit           IntakeUnit `json:"intakeUnit"`
	BottleSizeML         float64    `json:"bottleSizeML"`
	SipSizeOZ            float64    `json:"sipSizeOZ"`
	BottleSizeOZ         float64    `json:"bottleSizeOZ"`
	NotificationActions  []UnitType `json:"notificationActions"`
	TimeFormat           string     `json:"timeFormat"` // "12h" | "24h"
	Theme                string     `json:"theme"`      // "light" | "dark" | "system"
	SoundOverrideEnabled bool       `json:"soundOverrideEnabled"`
}

func DefaultSettings() HydrationSettings {
	return HydrationSettings{
		RemindersEnabled:     true,
		ReminderFrequency:    60,
		ActiveWindowStart:    "08:00",
		ActiveWindowEnd:      "20:00",
		Tone:                 TonePlayful,
		SoundEnabled:         true,
		DailySummary:         false,
		DailyTarget:          2000,
		BottleType:           "droplet",
		SipSizeML:            25,
		IntakeUnit:           IntakeUnitML,
		BottleSizeML:         500,
		SipSizeOZ:            1,
		BottleSizeOZ:         16,
		NotificationActions:  []UnitType{UnitQuarter, UnitHalf, UnitFull},
		TimeFormat:           "12h",
		Theme:                "system",
		SoundOverrideEnabled: false,
	}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	RemindersEnabled     *bool       `json:"remindersEnabled"`
	ReminderFrequency    *int        `json:"reminderFrequency"`
	ActiveWindowStart    *string     `json:"activeWindowStart"`
	ActiveWindowEnd      *string     `json:"activeWindowEnd"`
	Tone                 *Tone       `json:"tone"`
	SoundEnabled         *bool       `json:"soundEnabled"`
	DailySummary         *bool       `json:"dailySummary"`
	DailyTarget          *float64    `json:"dailyTarget"`
	BottleType           *string     `json:"bottleType"`
	SipSizeML            *float64    `json:"sipSizeML"`
	IntakeUnit           *IntakeUnit `json:"intakeUnit"`
	BottleSizeML         *float64    `json:"bottleSizeML"`
	SipSizeOZ            *float64    `json:"sipSizeOZ"`
	BottleSizeOZ         *float64    `json:"bottleSizeOZ"`
	NotificationActions  *[]UnitType `json:"notificationActions"`
	TimeFormat           *string     `json:"timeFormat"`
	Theme                *string     `json:"theme"`
	SoundOverrideEnabled *bool       `json:"soundOverrideEnabled"`
}

// Apply merges the patch into a copy of s and returns it.
func (s HydrationSettings) Apply(p SettingsPatch) HydrationSettings {
	if p.RemindersEnabled != nil {
		s.RemindersEnabled = *p.RemindersEnabled
	}
	if p.ReminderFrequency != nil {
		s.ReminderFrequency = *p.ReminderFrequency
	}
	if p.ActiveWindowStart != nil {
		s.ActiveWindowStart = *p.ActiveWindowStart
	}
	if p.ActiveWindowEnd != nil {
		s.ActiveWindowEnd = *p.ActiveWindowEnd
	}
	if p.Tone != nil {
		s.Tone = *p.Tone
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.DailySummary != nil {
		s.DailySummary = *p.DailySummary
	}
	if p.DailyTarget != nil {
		s.DailyTarget = *p.DailyTarget
	}
	if p.BottleType != nil {
		s.BottleType = *p.BottleType
	}
	if p.SipSizeML != nil {
		s.SipSizeML = *p.SipSizeML
	}
	if p.IntakeUnit != nil {
		s.IntakeUnit = *p.IntakeUnit
	}
	if p.BottleSizeML != nil {
		s.BottleSizeML = *p.BottleSizeML
	}
	if p.SipSizeOZ != nil {
		s.SipSizeOZ = *p.SipSizeOZ
	}
	if p.BottleSizeOZ != nil {
		s.BottleSizeOZ = *p.BottleSizeOZ
	}
	if p.NotificationActions != nil {
		s.NotificationActions = append([]UnitType(nil), (*p.NotificationActions)...)
	}
	if p.TimeFormat != nil {
		s.TimeFormat = *p.TimeFormat
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.SoundOverrideEnabled != nil {
		s.SoundOverrideEnabled = *p.SoundOverrideEnabled
	}
	return s
}

// ToggleNotificationAction adds or removes a quick-action unit. The set never
// drops below one element and never grows past MaxNotificationActions; on
// overflow the oldest entry is evicted first.
func (s *HydrationSettings) ToggleNotificationAction(unit UnitType) {
	for i, u := range s.NotificationActions {
		if u == unit {
			if len(s.NotificationActions) == 1 {
				return // last one stays
			}
			s.NotificationActions = append(s.NotificationActions[:i], s.NotificationActions[i+1:]...)
			return
		}
	}
	s.NotificationActions = append(s.NotificationActions, unit)
	if len(s.NotificationActions) > MaxNotificationActions {
		s.NotificationActions = s.NotificationActions[1:]
	}
}
