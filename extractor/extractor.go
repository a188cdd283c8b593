// Package extractor turns a fetched listing page into a structured record.
//
// Extraction is a single pure pass over one document: read the embedded
// structured-data block if any, run an independent heuristic per field, then
// merge field-by-field with structured values taking precedence. Structured
// data is trustworthy but frequently incomplete; heuristics are noisy but
// always produce some answer. Merging per field rather than per block means a
// gap in the structured data never nulls out a field a heuristic could fill.
//
// Every per-field miss is absorbed by that field's documented fallback, so the
// returned record is always fully populated. The only error the engine
// surfaces is a document that cannot be parsed at all.
package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"treehouse-importer/models"
	"treehouse-importer/utils"
)

// ErrEmptyDocument is returned when the fetched page has no content to parse.
var ErrEmptyDocument = errors.New("empty document")

// Engine extracts structured listings from raw HTML. It is stateless and safe
// for concurrent use; each Extract call owns its own parsed document.
type Engine struct {
	log *utils.Logger
}

// NewEngine creates an extraction engine emitting diagnostics to the logger.
func NewEngine(logger *utils.Logger) *Engine {
	return &Engine{log: logger}
}

// Extract parses the HTML once and assembles a complete ScrapedListing.
func (e *Engine) Extract(html string) (*models.ScrapedListing, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	bodyText := doc.Find("body").Text()
	sd := e.readStructuredData(doc)

	listing := &models.ScrapedListing{
		Title:       sd.Title,
		Description: sd.Description,
		Location:    sd.Location,
		Images:      sd.Images,
		Rating:      sd.Rating,
		ReviewCount: sd.ReviewCount,
		Lat:         sd.Lat,
		Lng:         sd.Lng,
	}

	if listing.Title == "" {
		listing.Title = e.extractTitle(doc)
	}
	if listing.Description == "" {
		listing.Description = e.extractDescription(doc)
	}
	if listing.Location == "" {
		listing.Location = e.extractLocation(doc, bodyText)
	}
	if len(listing.Images) == 0 {
		listing.Images = e.extractImages(doc)
	}
	listing.Images = dedupeCapped(listing.Images, maxImages)
	if listing.Rating == 0 {
		listing.Rating = e.extractRating(doc, bodyText)
	}
	if listing.ReviewCount == 0 {
		listing.ReviewCount = e.extractReviewCount(doc, bodyText)
	}
	if listing.Lat == nil {
		listing.Lat = e.extractCoordinate(doc, latitudeSelectors)
	}
	if listing.Lng == nil {
		listing.Lng = e.extractCoordinate(doc, longitudeSelectors)
	}

	// The structured-data block never carries these; they are heuristic-only.
	listing.Price = e.extractPrice(doc)
	listing.Guests, listing.Bedrooms, listing.Bathrooms = e.extractCapacity(bodyText)
	listing.Amenities = e.extractAmenities(bodyText)
	listing.HostName = e.extractHostName(doc)
	listing.HostAvatar = e.extractHostAvatar(doc)

	e.log.Debug("[extract] done: title=%q location=%q images=%d rating=%.2f reviews=%d",
		listing.Title, listing.Location, len(listing.Images), listing.Rating, listing.ReviewCount)

	return listing, nil
}
