package extractor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"treehouse-importer/models"
)

// jsonLDBlock mirrors the slice of schema.org listing metadata the source
// embeds in its pages. Only the fields the importer consumes are decoded.
type jsonLDBlock struct {
	Type            string         `json:"@type"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Image           any            `json:"image"`
	Address         *jsonLDAddress `json:"address"`
	AggregateRating *jsonLDRating  `json:"aggregateRating"`
	Latitude        *flexFloat     `json:"latitude"`
	Longitude       *flexFloat     `json:"longitude"`
}

type jsonLDAddress struct {
	Locality string `json:"addressLocality"`
	Region   string `json:"addressRegion"`
	Country  string `json:"addressCountry"`
}

type jsonLDRating struct {
	RatingValue *flexFloat `json:"ratingValue"`
	RatingCount *flexFloat `json:"ratingCount"`
}

// flexFloat decodes a JSON number that some pages serialise as a quoted
// string ("4.94") and others as a bare number (4.94).
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(val)
	return nil
}

// readStructuredData scans all embedded JSON-LD script blocks in document
// order and returns the partial record from the first block typed as a rental
// or product listing. Malformed blocks are skipped; when no matching block
// exists the returned record is empty. Never fails.
func (e *Engine) readStructuredData(doc *goquery.Document) models.StructuredData {
	var sd models.StructuredData

	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var block jsonLDBlock
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			e.log.Debug("[extract] json-ld block %d unreadable: %v", i, err)
			return true
		}

		if block.Type != "VacationRental" && block.Type != "Product" {
			e.log.Debug("[extract] json-ld block %d has type %q, skipping", i, block.Type)
			return true
		}

		sd = mapStructuredData(&block)
		found = true
		return false
	})

	if !found {
		e.log.Debug("[extract] no typed json-ld block found")
	}
	return sd
}

func mapStructuredData(block *jsonLDBlock) models.StructuredData {
	sd := models.StructuredData{
		Title:       block.Name,
		Description: block.Description,
	}

	// Only an image value that is already an array is trusted; single-string
	// and object forms are left to the heuristic extractor.
	if list, ok := block.Image.([]any); ok {
		for _, item := range list {
			if url, ok := item.(string); ok && url != "" {
				sd.Images = append(sd.Images, url)
			}
		}
	}

	if block.Address != nil {
		var parts []string
		for _, p := range []string{block.Address.Locality, block.Address.Region, block.Address.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		// An address object with no usable components leaves location unset so
		// the heuristics get a chance to fill it.
		if len(parts) > 0 {
			sd.Location = strings.Join(parts, ", ")
		}
	}

	if block.AggregateRating != nil {
		if block.AggregateRating.RatingValue != nil {
			sd.Rating = float64(*block.AggregateRating.RatingValue)
		}
		if block.AggregateRating.RatingCount != nil {
			sd.ReviewCount = int(*block.AggregateRating.RatingCount)
		}
	}

	if block.Latitude != nil && block.Longitude != nil {
		lat := float64(*block.Latitude)
		lng := float64(*block.Longitude)
		sd.Lat = &lat
		sd.Lng = &lng
	}

	return sd
}
