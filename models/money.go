package models

import "math"

// Round2 rounds to two decimals, matching the DECIMAL(10,2) columns money is
// stored in.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
