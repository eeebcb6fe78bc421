package common

import (
	"fmt"
	"strconv"
	"strings"
)

// numberLocale identifies the separator convention of a raw number string.
type numberLocale int

const (
	localeEnglish numberLocale = iota // 1,234.56
	localeGerman                      // 1.234,56
)

// ParseLocaleNumber parses a number string that may use either the English
// ("1,234.56") or German ("1.234,56") separator convention, detecting the
// convention from the string itself. Broker CSV exports mix both.
func ParseLocaleNumber(numberString string) (float64, error) {
	s := strings.TrimSpace(numberString)
	if s == "" {
		return 0, fmt.Errorf("cannot parse empty number string")
	}

	var thousands, decimal string
	switch detectNumberLocale(s) {
	case localeGerman:
		thousands, decimal = ".", ","
	default:
		thousands, decimal = ",", "."
	}

	cleaned := strings.ReplaceAll(s, thousands, "")
	cleaned = strings.Replace(cleaned, decimal, ".", 1)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse number string %q: %w", numberString, err)
	}
	return value, nil
}

// detectNumberLocale guesses the separator convention. When only one
// separator kind is present it is assumed to be the decimal separator;
// when both are present, the one appearing last wins.
func detectNumberLocale(s string) numberLocale {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case !hasComma && !hasDot:
		return localeEnglish
	case hasComma && !hasDot:
		return localeGerman
	case !hasComma && hasDot:
		return localeEnglish
	case strings.LastIndex(s, ",") > strings.LastIndex(s, "."):
		return localeGerman
	default:
		return localeEnglish
	}
}
