package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LearnGrowCode/water-timeout-backend/models"
)

func TestFormatValue(t *testing.T) {
	require.Equal(t, "500ml", FormatValue(500, models.IntakeUnitML))
	require.Equal(t, "2L", FormatValue(2000, models.IntakeUnitML))
	require.Equal(t, "1.5L", FormatValue(1500, models.IntakeUnitML))
	require.Equal(t, "16 fl oz", FormatValue(16, models.IntakeUnitOZ))
	require.Equal(t, "12 pts", FormatValue(12, models.IntakeUnitPoints))
}

func TestGenerateRandomToken(t *testing.T) {
	tok := GenerateRandomToken(9)
	require.Len(t, tok, 9)
	for _, c := range tok {
		require.Contains(t, tokenCharset, string(c))
	}

	// collisions over a small sample would indicate a broken generator
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateRandomToken(9)] = true
	}
	require.Greater(t, len(seen), 90)
}
