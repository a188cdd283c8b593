package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxImages = 10

// imageSelectors is ordered by expected quality: the data-original-uri
// attribute points at the full-resolution CDN asset, rendered src values are
// often downscaled.
var imageSelectors = []string{
	`img[data-original-uri*="muscache.com"]`,
	`img[src*="muscache.com"]`,
	`img[class*="i33bb1j"]`,
	`img[fetchpriority="high"]`,
	`img[elementtiming="LCP-target"]`,
	`img[data-original-uri]`,
	`img[src*="airbnb"]`,
	`img`,
}

// extractImages collects property photo URLs. The first selector that yields
// any candidate wins; later, more general selectors are only consulted when
// the specific ones come up empty. Results are deduplicated in discovery
// order and capped.
func (e *Engine) extractImages(doc *goquery.Document) []string {
	for _, selector := range imageSelectors {
		var candidates []string
		doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
			if url := pickImageURL(img); url != "" {
				candidates = append(candidates, url)
			}
		})

		if len(candidates) > 0 {
			e.log.Debug("[extract] %d image candidates from selector %q", len(candidates), selector)
			return dedupeCapped(candidates, maxImages)
		}
	}

	e.log.Debug("[extract] no image candidates found")
	return []string{}
}

// pickImageURL chooses the best URL an img element offers, filtering out
// profile photos, platform chrome and inline data URIs.
func pickImageURL(img *goquery.Selection) string {
	originalURI := img.AttrOr("data-original-uri", "")
	src := img.AttrOr("src", "")

	isUserProfile := strings.Contains(src, "UserProfile") || strings.Contains(originalURI, "UserProfile")
	isPlatformAsset := strings.Contains(src, "platform-assets") || strings.Contains(originalURI, "platform-assets")

	if originalURI != "" && strings.Contains(originalURI, "muscache.com") &&
		!isUserProfile && !isPlatformAsset {
		return originalURI
	}

	if src != "" && strings.Contains(src, "muscache.com") &&
		!isUserProfile && !isPlatformAsset {
		return src
	}

	if src != "" &&
		!strings.Contains(src, "data:image") &&
		!strings.Contains(src, "placeholder") &&
		!strings.Contains(src, "icon") &&
		!strings.Contains(src, "logo") &&
		!isUserProfile && !isPlatformAsset &&
		(strings.Contains(src, "airbnb") || strings.Contains(src, "muscache")) {
		return src
	}

	return ""
}
