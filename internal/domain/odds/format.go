package odds

import (
	"math"
	"strconv"
)

// FormatAmerican renders a price with an explicit sign. Missing or zero
// prices render as "-".
func FormatAmerican(price *int) string {
	if price == nil || *price == 0 {
		return "-"
	}
	if *price > 0 {
		return "+" + strconv.Itoa(*price)
	}
	return strconv.Itoa(*price)
}

// ImpliedProbability converts American odds to a 0-1 probability.
// +150 → 0.40, -150 → 0.60. Zero is not a valid price.
func ImpliedProbability(price int) (float64, bool) {
	switch {
	case price > 0:
		return 100 / (float64(price) + 100), true
	case price < 0:
		abs := math.Abs(float64(price))
		return abs / (abs + 100), true
	default:
		return 0, false
	}
}
