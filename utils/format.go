package utils

import (
	"fmt"
	"math"

	"github.com/LearnGrowCode/water-timeout-backend/models"
)

// FormatValue renders an intake value in its measurement unit, collapsing
// large milliliter values to liters.
func FormatValue(value float64, unit models.IntakeUnit) string {
	switch unit {
	case models.IntakeUnitML:
		if value >= 1000 {
			liters := value / 1000
			if liters == math.Trunc(liters) {
				return fmt.Sprintf("%gL", liters)
			}
			return fmt.Sprintf("%.1fL", liters)
		}
		return fmt.Sprintf("%gml", value)
	case models.IntakeUnitOZ:
		return fmt.Sprintf("%g fl oz", value)
	default:
		return fmt.Sprintf("%g pts", value)
	}
}
