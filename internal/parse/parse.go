// Package parse turns loosely-typed listing fields into clean feature values.
// Every parser is total: malformed or absent input resolves to a documented
// default and never returns an error.
package parse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/comps-cli/internal/model"
)

// DateLayout is the only accepted effective date format.
const DateLayout = "2006-01-02"

// Age and construction year ranges used by Age.
const (
	MaxAge       = 150
	MinYearBuilt = 1800
)

// areaUnits are stripped from the end of area strings, longest first so
// "sq. ft." is not left as "sq.".
var areaUnits = []string{
	"square feet",
	"square ft",
	"sq. ft.",
	"sq. ft",
	"sq.ft.",
	"sq.ft",
	"sq ft",
	"sqft",
	"ft²",
	"ft2",
	"sf",
}

// Area parses a gross living area such as "1,500 SqFt" or 1500.
// Returns 0 for absent, empty, negative or unparseable input.
func Area(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, unit := range areaUnits {
		if strings.HasSuffix(s, unit) {
			s = strings.TrimSuffix(s, unit)
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")

	v, ok := number(s)
	if !ok || v < 0 {
		return 0
	}
	return v
}

// Date parses a strict YYYY-MM-DD date.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EffectiveYear returns the calendar year of a YYYY-MM-DD date, or fallback.
func EffectiveYear(s string, fallback int) int {
	if t, ok := Date(s); ok {
		return t.Year()
	}
	return fallback
}

// Age resolves a year_built value that may hold either an age or a
// construction year. Values in (0, MaxAge) are ages and returned as is;
// values >= MinYearBuilt are years and yield effectiveYear - value, which is
// negative for a future year. Anything else resolves to 0.
func Age(s string, effectiveYear int) int {
	v, ok := number(s)
	if !ok {
		return 0
	}
	switch {
	case v > 0 && v < MaxAge:
		return int(v)
	case v >= MinYearBuilt && v < math.MaxInt32:
		return effectiveYear - int(v)
	default:
		return 0
	}
}

// Rooms parses a room count. Fractions are truncated; negative or
// unparseable input yields 0.
func Rooms(s string) int {
	v, ok := number(s)
	if !ok || v < 0 || v >= math.MaxInt32 {
		return 0
	}
	return int(v)
}

// StructureType canonicalizes a free-form structure label: surrounding and
// repeated whitespace is collapsed and the text is NFC-normalized so visually
// identical labels share a category. Case is preserved.
func StructureType(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return model.UnknownStructureType
	}
	return norm.NFC.String(s)
}

func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	// ParseFloat accepts Go literal digit separators; listing data never uses them.
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
