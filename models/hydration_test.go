package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	d := time.Date(2026, 3, 7, 23, 59, 0, 0, time.Local)
	require.Equal(t, "2026-03-07", DateKey(d))
}

func TestComputeMoodBoundaries(t *testing.T) {
	require.Equal(t, MoodHappy, ComputeMood(16, 20))
	require.Equal(t, MoodOkay, ComputeMood(10, 20))
	require.Equal(t, MoodMild, ComputeMood(4, 20))
	require.Equal(t, MoodSad, ComputeMood(0, 20))

	// just below each threshold
	require.Equal(t, MoodOkay, ComputeMood(15.9, 20))
	require.Equal(t, MoodMild, ComputeMood(9.9, 20))
	require.Equal(t, MoodSad, ComputeMood(3.9, 20))

	// capped progress stays happy
	require.Equal(t, MoodHappy, ComputeMood(40, 20))
}

func TestUnitValueML(t *testing.T) {
	s := DefaultSettings()
	s.IntakeUnit = IntakeUnitML
	s.SipSizeML = 25
	s.BottleSizeML = 500

	require.Equal(t, 25.0, UnitValue(UnitSip, s))
	require.Equal(t, 125.0, UnitValue(UnitQuarter, s))
	require.Equal(t, 250.0, UnitValue(UnitHalf, s))
	require.Equal(t, 500.0, UnitValue(UnitFull, s))
}

func TestUnitValueOZ(t *testing.T) {
	s := DefaultSettings()
	s.IntakeUnit = IntakeUnitOZ
	s.SipSizeOZ = 1
	s.BottleSizeOZ = 16

	require.Equal(t, 1.0, UnitValue(UnitSip, s))
	require.Equal(t, 4.0, UnitValue(UnitQuarter, s))
	require.Equal(t, 8.0, UnitValue(UnitHalf, s))
	require.Equal(t, 16.0, UnitValue(UnitFull, s))
}

func TestUnitValuePoints(t *testing.T) {
	s := DefaultSettings()
	s.IntakeUnit = IntakeUnitPoints

	require.Equal(t, 1.0, UnitValue(UnitSip, s))
	require.Equal(t, 2.0, UnitValue(UnitQuarter, s))
	require.Equal(t, 3.0, UnitValue(UnitHalf, s))
	require.Equal(t, 4.0, UnitValue(UnitFull, s))
}

func TestUnitTypeValid(t *testing.T) {
	for _, u := range AllUnitTypes {
		require.True(t, u.Valid())
	}
	require.False(t, UnitType("gulp").Valid())
	require.False(t, UnitType("").Valid())
}
