package models

import (
	"fmt"
	"time"
)

// UnitType is one of the four fixed intake sizes a user can log.
type UnitType string

const (
	UnitSip     UnitType = "sip"
	UnitQuarter UnitType = "quarter"
	UnitHalf    UnitType = "half"
	UnitFull    UnitType = "full"
)

// AllUnitTypes in the order they appear on notification action buttons.
var AllUnitTypes = []UnitType{UnitSip, UnitQuarter, UnitHalf, UnitFull}

func (u UnitType) Valid() bool {
	switch u {
	case UnitSip, UnitQuarter, UnitHalf, UnitFull:
		return true
	}
	return false
}

// IntakeEvent is one logged drink action. Immutable once created.
type IntakeEvent struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"` // milliseconds since epoch
	UnitType  UnitType `json:"unitType"`
}

// DayRecord aggregates one calendar date. Target is snapshotted per day so
// later target changes do not rewrite historic percentages.
type DayRecord struct {
	Events []IntakeEvent `json:"events"`
	Target float64       `json:"target"`
}

// DailySummary is the derived view of one day handed to clients.
type DailySummary struct {
	Date        string        `json:"date"`
	Events      []IntakeEvent `json:"events"`
	TotalPoints float64       `json:"totalPoints"`
	Target      float64       `json:"target"`
}

// Mood is the qualitative progress level toward the daily target.
type Mood string

const (
	MoodSad   Mood = "sad"
	MoodMild  Mood = "mild"
	MoodOkay  Mood = "okay"
	MoodHappy Mood = "happy"
)

// UnitPoints are the fixed values used when the intake unit is abstract points.
var UnitPoints = map[UnitType]float64{
	UnitSip:     1,
	UnitQuarter: 2,
	UnitHalf:    3,
	UnitFull:    4,
}

var UnitLabels = map[UnitType]string{
	UnitSip:     "Sip",
	UnitQuarter: "¼ Bottle",
	UnitHalf:    "½ Bottle",
	UnitFull:    "Full Bottle",
}

var UnitEmojis = map[UnitType]string{
	UnitSip:     "💧",
	UnitQuarter: "🥤",
	UnitHalf:    "🍶",
	UnitFull:    "🫗",
}

// Storage keys for the two wholesale-persisted records, plus the push
// device registry.
const (
	LedgerKey   = "water_timeout_events_v1"
	SettingsKey = "water_timeout_settings_v1"
	DevicesKey  = "water_timeout_devices_v1"
)

// DateKey formats a time into its local-calendar-day key, e.g. "2026-08-30".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ComputeMood classifies progress toward the target. Thresholds sit exactly
// at 20%, 50% and 80% of target; a zero target is the caller's problem.
func ComputeMood(totalPoints, target float64) Mood {
	percentage := totalPoints / target
	switch {
	case percentage >= 0.8:
		return MoodHappy
	case percentage >= 0.5:
		return MoodOkay
	case percentage >= 0.2:
		return MoodMild
	default:
		return MoodSad
	}
}

// MoodLabel is the short encouragement shown next to the mood.
func MoodLabel(m Mood) string {
	switch m {
	case MoodHappy:
		return "Amazing! 🎉"
	case MoodOkay:
		return "Great job! 👍"
	case MoodMild:
		return "Keep going! 💪"
	default:
		return "Let's hydrate! 💧"
	}
}

// UnitValue converts a unit type into the active measurement unit: fixed
// point values for "points", otherwise the configured sip size or a fraction
// of the configured bottle size.
func UnitValue(unit UnitType, s HydrationSettings) float64 {
	switch s.IntakeUnit {
	case IntakeUnitML:
		switch unit {
		case UnitSip:
			return s.SipSizeML
		case UnitQuarter:
			return s.BottleSizeML * 0.25
		case UnitHalf:
			return s.BottleSizeML * 0.5
		case UnitFull:
			return s.BottleSizeML
		}
		return 0
	case IntakeUnitOZ:
		switch unit {
		case UnitSip:
			return s.SipSizeOZ
		case UnitQuarter:
			return s.BottleSizeOZ * 0.25
		case UnitHalf:
			return s.BottleSizeOZ * 0.5
		case UnitFull:
			return s.BottleSizeOZ
		}
		return 0
	}
	return UnitPoints[unit]
}

// ActionButtonTitle renders the notification action button for a unit.
func ActionButtonTitle(unit UnitType) string {
	return fmt.Sprintf("%s %s", UnitEmojis[unit], UnitLabels[unit])
}
