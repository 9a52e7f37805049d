package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02-01-2006"
	// UnknownLabel is how unknown text values are rendered.
	UnknownLabel = "-"
)

// IsPlaceholder reports whether a free-text value stands for "unknown".
func IsPlaceholder(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "-", "unknown", "none", "null", "n/a":
		return true
	default:
		return false
	}
}

// NormalizeText trims v and maps placeholders to "".
func NormalizeText(v string) string {
	if IsPlaceholder(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// ParseHand accepts R/L, right/left and the Spanish labels used by older
// clients. Anything else is unknown.
func ParseHand(v string) Hand {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "r", "right", "derecha", "diestro":
		return HandRight
	case "l", "left", "izquierda", "zurdo":
		return HandLeft
	default:
		return HandUnknown
	}
}

// NormalizeCountry returns a lower-case ISO 3166-1 alpha-2 code, or "" when
// the input cannot be mapped. Alpha-3 and IOC codes are converted.
func NormalizeCountry(v string) string {
	code := strings.ToUpper(strings.TrimSpace(v))
	switch len(code) {
	case 2:
		if !isLetters(code) {
			return ""
		}
		return strings.ToLower(code)
	case 3:
		if alpha2, ok := CountryFromAlpha3(code); ok {
			return alpha2
		}
		if alpha2, ok := iocToAlpha2[code]; ok {
			return alpha2
		}
		return ""
	default:
		return ""
	}
}

// CountryFromAlpha3 converts an ISO 3166-1 alpha-3 code.
func CountryFromAlpha3(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 || !isLetters(code) {
		return "", false
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	alpha2 := region.String()
	if len(alpha2) != 2 {
		return "", false
	}
	return strings.ToLower(alpha2), true
}

// iocToAlpha2 covers tour nationality codes that are not ISO alpha-3 codes.
var iocToAlpha2 = map[string]string{
	"ALG": "dz", "BAH": "bs", "BAR": "bb", "BUL": "bg", "CHI": "cl",
	"CRC": "cr", "CRO": "hr", "DEN": "dk", "ESA": "sv", "GER": "de",
	"GRE": "gr", "GUA": "gt", "HAI": "ht", "INA": "id", "IRI": "ir",
	"KSA": "sa", "LAT": "lv", "LIB": "lb", "MAS": "my", "NED": "nl",
	"PAR": "py", "PHI": "ph", "POR": "pt", "RSA": "za", "SLO": "si",
	"SUI": "ch", "TPE": "tw", "URU": "uy", "ZIM": "zw",
}

// ParseBirthDate accepts YYYY-MM-DD and DD-MM-YYYY. Placeholders parse to the
// zero time.
func ParseBirthDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if IsPlaceholder(v) {
		return time.Time{}, nil
	}
	for _, layout := range []string{DateLayout, DisplayDateLayout} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
}

// FormatBirthDate renders a known birth date as DD-MM-YYYY.
func FormatBirthDate(p Player) string {
	if !p.HasBirthDate() {
		return ""
	}
	return p.BirthDate.Format(DisplayDateLayout)
}

// MaxMeasure is the first value that no longer fits the NUMERIC(5, 1)
// height and weight columns.
const MaxMeasure = 10000

// ParseMeasure parses a height or weight given as free text and truncates it
// to one decimal. Placeholders parse to 0.
func ParseMeasure(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if IsPlaceholder(v) {
		return 0, nil
	}
	out, err := strconv.ParseFloat(strings.TrimPrefix(v, "+"), 64)
	if err != nil || math.IsNaN(out) || math.IsInf(out, 0) || out < 0 {
		return 0, fmt.Errorf("invalid measure %q", v)
	}
	out = TruncateTenths(out)
	if out >= MaxMeasure {
		return 0, fmt.Errorf("measure %q out of range, must be below %d", v, MaxMeasure)
	}
	return out, nil
}

// TruncateTenths cuts v to one decimal place.
func TruncateTenths(v float64) float64 {
	return math.Floor(v*10+1e-9) / 10
}

func isAlpha2(v string) bool {
	return len(v) == 2 && v == strings.ToLower(v) && isLetters(v)
}

func isLetters(v string) bool {
	for _, r := range v {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return v != ""
}
