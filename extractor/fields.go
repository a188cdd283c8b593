package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultGuests    = 2
	defaultBedrooms  = 1
	defaultBathrooms = 1
	defaultHostName  = "Host"
	maxAmenities     = 10
)

var (
	guestsRegexp    = regexp.MustCompile(`(?i)(\d+)\s*guests?`)
	bedroomsRegexp  = regexp.MustCompile(`(?i)(\d+)\s*bedrooms?`)
	bathroomsRegexp = regexp.MustCompile(`(?i)(\d+)\s*bathrooms?`)
	// ratingTextRegexp is the body-text fallback when no rating element
	// matches, e.g. "4.94 stars" or "4.9 rating".
	ratingTextRegexp = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:stars?|rating)`)
	reviewTextRegexp = regexp.MustCompile(`(?i)(\d+)\s*reviews?`)
)

var priceSelectors = []string{
	`[data-testid="price"]`,
	`._1y6fhhr`,
	`[class*="price"]`,
	`[class*="cost"]`,
}

// extractPrice takes the first digit run from the price selector cascade.
func (e *Engine) extractPrice(doc *goquery.Document) int {
	for _, selector := range priceSelectors {
		text := doc.Find(selector).First().Text()
		if price := parseAmount(text); price > 0 {
			return price
		}
	}
	e.log.Debug("[extract] no price candidate, defaulting to 0")
	return 0
}

// extractCapacity pulls guest/bedroom/bathroom counts out of the body text.
func (e *Engine) extractCapacity(bodyText string) (guests, bedrooms, bathrooms int) {
	guests = firstCount(guestsRegexp, bodyText, defaultGuests)
	bedrooms = firstCount(bedroomsRegexp, bodyText, defaultBedrooms)
	bathrooms = firstCount(bathroomsRegexp, bodyText, defaultBathrooms)
	return guests, bedrooms, bathrooms
}

func firstCount(pattern *regexp.Regexp, text string, fallback int) int {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return n
}

// extractAmenities matches body text against the fixed amenity vocabulary,
// preserving vocabulary order.
func (e *Engine) extractAmenities(bodyText string) []string {
	lower := strings.ToLower(bodyText)

	amenities := make([]string, 0, maxAmenities)
	for _, amenity := range amenityVocabulary {
		if strings.Contains(lower, strings.ToLower(amenity)) {
			amenities = append(amenities, amenity)
			if len(amenities) == maxAmenities {
				break
			}
		}
	}
	return amenities
}

var hostNameSelectors = []string{
	`[data-testid="host-name"]`,
	`[class*="host"]`,
	`[class*="owner"]`,
}

func (e *Engine) extractHostName(doc *goquery.Document) string {
	for _, selector := range hostNameSelectors {
		if text := normalizeText(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return defaultHostName
}

var hostAvatarSelectors = []string{
	`[data-testid="host-avatar"] img`,
	`[class*="host"] img`,
	`[class*="avatar"] img`,
}

func (e *Engine) extractHostAvatar(doc *goquery.Document) string {
	for _, selector := range hostAvatarSelectors {
		src := doc.Find(selector).First().AttrOr("src", "")
		if src != "" && !strings.Contains(src, "data:image") {
			return src
		}
	}
	return ""
}

// ratingSelectors is deliberately broad: the source renders the score in a
// bare aria-hidden div with no stable class. Known precision/recall tradeoff;
// the 0–5 validity window below is what keeps false positives out.
var ratingSelectors = []string{
	`div[aria-hidden="true"]`,
	`[data-testid="listing-rating"]`,
	`[class*="rating"]`,
	`[aria-label*="rating"]`,
	`[aria-label*="stars"]`,
}

// extractRating returns the first decimal in the 0–5 window found in the
// rating selector cascade, falling back to a body-text scan.
func (e *Engine) extractRating(doc *goquery.Document, bodyText string) float64 {
	for _, selector := range ratingSelectors {
		var found float64
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := normalizeText(s.Text())
			if text == "" {
				text = s.AttrOr("aria-label", "")
			}
			if val, ok := parseDecimal(text); ok && isValidRating(val) {
				found = val
				return false
			}
			return true
		})
		if found > 0 {
			e.log.Debug("[extract] rating %.2f from selector %q", found, selector)
			return found
		}
	}

	if m := ratingTextRegexp.FindStringSubmatch(bodyText); m != nil {
		if val, err := strconv.ParseFloat(m[1], 64); err == nil && isValidRating(val) {
			e.log.Debug("[extract] rating %.2f from body text", val)
			return val
		}
	}

	e.log.Debug("[extract] no rating candidate, defaulting to 0")
	return 0
}

func isValidRating(val float64) bool {
	return val > 0 && val <= 5
}

var reviewCountSelectors = []string{
	`[data-testid="listing-reviews"]`,
	`[class*="review"]`,
	`[aria-label*="review"]`,
}

// extractReviewCount scans the review selector cascade for the first integer,
// with a body-text fallback.
func (e *Engine) extractReviewCount(doc *goquery.Document, bodyText string) int {
	for _, selector := range reviewCountSelectors {
		sel := doc.Find(selector).First()
		text := sel.Text()
		if text == "" {
			text = sel.AttrOr("aria-label", "")
		}
		if n, ok := parseInteger(text); ok {
			return n
		}
	}

	if m := reviewTextRegexp.FindStringSubmatch(bodyText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	e.log.Debug("[extract] no review count candidate, defaulting to 0")
	return 0
}

var (
	latitudeSelectors  = []string{`meta[property="airbnb:latitude"]`, `meta[name="latitude"]`}
	longitudeSelectors = []string{`meta[property="airbnb:longitude"]`, `meta[name="longitude"]`}
)

// extractCoordinate reads a coordinate from a small fixed set of meta tags.
// Returns nil when absent: unknown is not the same as zero.
func (e *Engine) extractCoordinate(doc *goquery.Document, selectors []string) *float64 {
	for _, selector := range selectors {
		content := doc.Find(selector).First().AttrOr("content", "")
		if content == "" {
			continue
		}
		val, err := strconv.ParseFloat(content, 64)
		if err != nil {
			continue
		}
		return &val
	}
	return nil
}
