package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTitle       = "Untitled Property"
	defaultDescription = "No description available"
)

var (
	// platformSuffixRegexp strips the trailing platform name the source
	// appends to page titles ("... - Airbnb").
	platformSuffixRegexp = regexp.MustCompile(`\s*(?:-\s*)?Airbnb\s*$`)
	// rentalTitleRegexp matches headings shaped like
	// "Sky Cabin - Treehouses for Rent in Austin, Texas".
	rentalTitleRegexp = regexp.MustCompile(`(?i)^(.+?)\s*-\s*(.+?) for rent in (.+)$`)
	// splitTitleRegexp is the looser "name - tail" form; the tail is only
	// treated as a location when it looks like one.
	splitTitleRegexp = regexp.MustCompile(`^(.+?)\s*-\s*(.+)$`)
)

var titleSelectors = []string{
	`h1[data-testid="listing-title"]`,
	`h1._14i3z6h`,
	`h1[class*="title"]`,
	`h1`,
	`title`,
}

// extractTitle walks the title selector cascade and splits off any location
// tail the source bakes into the heading.
func (e *Engine) extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		text := normalizeText(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}

		title := platformSuffixRegexp.ReplaceAllString(text, "")

		if m := rentalTitleRegexp.FindStringSubmatch(title); m != nil {
			e.log.Debug("[extract] title split from rental heading: %q", m[1])
			return strings.TrimSpace(m[1])
		}

		if m := splitTitleRegexp.FindStringSubmatch(title); m != nil && looksLikeLocation(m[2]) {
			e.log.Debug("[extract] title split from heading with location tail: %q", m[1])
			return strings.TrimSpace(m[1])
		}

		if title != "" && title != "Airbnb" {
			return title
		}
	}

	e.log.Debug("[extract] no title candidate, using default")
	return defaultTitle
}

// looksLikeLocation reports whether a heading tail reads like a place name:
// it contains a comma or a recognised region/country token.
func looksLikeLocation(tail string) bool {
	if strings.Contains(tail, ",") {
		return true
	}
	return containsState(tail) || containsCountry(tail)
}

func containsState(text string) bool {
	lower := strings.ToLower(text)
	for _, state := range usStates {
		if strings.Contains(lower, strings.ToLower(state)) {
			return true
		}
	}
	return false
}

func containsCountry(text string) bool {
	lower := strings.ToLower(text)
	for _, country := range countries {
		if strings.Contains(lower, strings.ToLower(country)) {
			return true
		}
	}
	return false
}

var descriptionSelectors = []string{
	`[data-testid="listing-description"]`,
	`._1y6fhhr`,
	`[class*="description"]`,
	`meta[name="description"]`,
}

// extractDescription takes the first selector whose text (or content
// attribute, for meta tags) is long enough to be a real description.
func (e *Engine) extractDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		sel := doc.Find(selector).First()
		text := normalizeText(sel.Text())
		if text == "" {
			text = normalizeText(sel.AttrOr("content", ""))
		}
		if len(text) > 10 {
			return text
		}
	}

	e.log.Debug("[extract] no description candidate, using default")
	return defaultDescription
}
