package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// digitRunRegexp captures the first run of digits with optional thousands
	// separators, e.g. "1,250" in "$1,250 per night".
	digitRunRegexp = regexp.MustCompile(`[\d,]+`)
	// decimalRegexp captures a decimal number such as "4.94".
	decimalRegexp = regexp.MustCompile(`(\d+\.?\d*)`)
	// integerRegexp captures a plain integer.
	integerRegexp = regexp.MustCompile(`(\d+)`)
)

// normalizeText strips leading/trailing whitespace and collapses internal
// whitespace runs to single spaces.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// parseAmount extracts the first separator-tolerant integer from s.
// Returns 0 when no digits are present.
func parseAmount(s string) int {
	match := digitRunRegexp.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// parseDecimal extracts the first decimal number from s.
// Returns 0 and false when s has none.
func parseDecimal(s string) (float64, bool) {
	match := decimalRegexp.FindStringSubmatch(s)
	if len(match) < 2 {
		return 0, false
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// parseInteger extracts the first integer from s.
func parseInteger(s string) (int, bool) {
	match := integerRegexp.FindStringSubmatch(s)
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// dedupeCapped removes duplicates preserving first-seen order and caps the
// result at max entries. Running it twice yields the same result.
func dedupeCapped(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}
