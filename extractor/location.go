package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultLocation = "Location not specified"

// No single selector is reliable for location: the source's class names are
// obfuscated and churn between deployments. The cascade trades precision for
// resilience: structured-ish elements first, then heading text, then free-text
// pattern scans over the whole body.
var locationSelectors = []string{
	`.s1qk96pm`,
	`[class*="s1qk96pm"]`,
	`[data-testid="listing-location"]`,
	`[class*="location"]`,
	`[class*="address"]`,
	`[class*="place"]`,
	`div[aria-hidden="true"]`,
	`h2`,
	`h3`,
	`span`,
	`div`,
	`p`,
}

var (
	postalCodeRegexp = regexp.MustCompile(`\d{5}(-\d{4})?`)

	cityToken = `[A-Z][a-z]+(?: [A-Z][a-z]+)*`

	// cityStateCountryRegexp matches "Bend, Oregon, United States" shaped
	// substrings; the most specific pattern is tried first.
	cityStateCountryRegexp *regexp.Regexp
	// cityKnownStateRegexp matches "Austin, Texas" with a recognised state.
	cityKnownStateRegexp *regexp.Regexp
	// cityCityRegexp is the loosest "Anything, Anything" capitalised pair.
	cityCityRegexp = regexp.MustCompile(cityToken + `,\s*` + cityToken)

	// stateFragmentRegexps holds one per-state pattern for the final
	// body-text sweep, in vocabulary order.
	stateFragmentRegexps []*regexp.Regexp
)

func init() {
	countryAlt := strings.Join(countries, "|")
	stateAlt := strings.Join(usStates, "|")

	cityStateCountryRegexp = regexp.MustCompile(
		cityToken + `,\s*` + cityToken + `,\s*(?:` + countryAlt + `)`)
	cityKnownStateRegexp = regexp.MustCompile(
		cityToken + `,\s*(?:` + stateAlt + `)`)

	for _, state := range usStates {
		stateFragmentRegexps = append(stateFragmentRegexps, regexp.MustCompile(
			cityToken+`,\s*`+state+`(?:,\s*(?:United States|USA|Canada|Mexico))?`))
	}
}

// extractLocation runs the four-stage location cascade.
func (e *Engine) extractLocation(doc *goquery.Document, bodyText string) string {
	// Stage 1: selector scan for address-shaped element text.
	for _, selector := range locationSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := normalizeText(s.Text())
			if text == "" {
				return true
			}
			if isAddressShaped(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			e.log.Debug("[extract] location from selector %q: %q", selector, found)
			return found
		}
	}

	// Stage 2: heading text carrying a location tail.
	if loc := locationFromHeadings(doc); loc != "" {
		e.log.Debug("[extract] location from heading: %q", loc)
		return loc
	}

	// Stage 3: body-text pattern scan, most specific shape first; the longest
	// match wins so "Bend, Oregon, United States" beats "Bend, Oregon".
	for _, pattern := range []*regexp.Regexp{cityStateCountryRegexp, cityKnownStateRegexp, cityCityRegexp} {
		matches := pattern.FindAllString(bodyText, -1)
		if len(matches) == 0 {
			continue
		}
		longest := matches[0]
		for _, m := range matches[1:] {
			if len(m) > len(longest) {
				longest = m
			}
		}
		e.log.Debug("[extract] location from body-text pattern: %q", longest)
		return strings.TrimSpace(longest)
	}

	// Stage 4: per-state sweep for a "City, State[, Country]" fragment.
	for _, pattern := range stateFragmentRegexps {
		if m := pattern.FindString(bodyText); m != "" {
			e.log.Debug("[extract] location from state fragment: %q", m)
			return strings.TrimSpace(m)
		}
	}

	e.log.Debug("[extract] no location candidate, using default")
	return defaultLocation
}

// isAddressShaped reports whether element text plausibly holds a full
// location: a comma, recognised state or country, or postal code, at sane
// length.
func isAddressShaped(text string) bool {
	if len(text) <= 5 || len(text) >= 200 {
		return false
	}
	return strings.Contains(text, ",") ||
		containsState(text) ||
		containsCountry(text) ||
		postalCodeRegexp.MatchString(text)
}

// locationFromHeadings reuses the title-splitting patterns on heading
// elements and returns the location portion.
func locationFromHeadings(doc *goquery.Document) string {
	var found string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeText(s.Text())
		if text == "" {
			return true
		}

		if m := rentalTitleRegexp.FindStringSubmatch(text); m != nil {
			found = strings.TrimSpace(m[3])
			return false
		}
		if m := splitTitleRegexp.FindStringSubmatch(text); m != nil {
			tail := strings.TrimSpace(m[2])
			if looksLikeLocation(tail) {
				found = tail
				return false
			}
		}
		if strings.Contains(text, ",") && len(text) > 10 && len(text) < 100 {
			found = text
			return false
		}
		return true
	})
	return found
}
