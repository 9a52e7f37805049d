package wikidata

import "github.com/riskibarqy/tennis-players/internal/domain/player"

// Unit entity ids mapped to a factor into centimeters or kilograms.
var (
	lengthToCM = map[string]float64{
		"Q11573":  100,   // metre
		"Q174728": 1,     // centimetre
		"Q3710":   30.48, // foot
		"Q218593": 2.54,  // inch
	}
	massToKG = map[string]float64{
		"Q11570": 1,      // kilogram
		"Q19908": 0.4536, // pound
	}
)

// convert applies a unit table and truncates to one decimal.
func convert(table map[string]float64, amount float64, unit string) (float64, bool) {
	factor, ok := table[unit]
	if !ok || amount <= 0 {
		return 0, false
	}
	return player.TruncateTenths(amount * factor), true
}
