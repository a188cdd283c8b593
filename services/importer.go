package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"treehouse-importer/extractor"
	"treehouse-importer/fetcher"
	"treehouse-importer/models"
	"treehouse-importer/storage"
	"treehouse-importer/utils"
)

// Import error taxonomy. Input rejection happens before any fetch; a fetch or
// extraction failure is surfaced whole, never as a partial record.
var (
	ErrInvalidURL       = errors.New("url does not belong to the supported source")
	ErrImportInFlight   = errors.New("an import for this url is already running")
	ErrFetchFailed      = errors.New("listing page could not be fetched")
	ErrExtractionFailed = errors.New("listing page could not be parsed")
)

// ImportService orchestrates one listing import: validate the URL, fetch the
// page (plain HTTP first, browser only on failure), extract the structured
// record, persist it for the owner.
type ImportService struct {
	sourceDomain string
	chain        *fetcher.Chain
	engine       *extractor.Engine
	store        storage.PropertyStore
	audit        *storage.CSVWriter
	inflight     *utils.URLSet
	log          *utils.Logger
}

// NewImportService wires an ImportService. store and audit may be nil; the
// service then extracts without persisting.
func NewImportService(sourceDomain string, chain *fetcher.Chain, engine *extractor.Engine,
	store storage.PropertyStore, audit *storage.CSVWriter, logger *utils.Logger) *ImportService {
	return &ImportService{
		sourceDomain: sourceDomain,
		chain:        chain,
		engine:       engine,
		store:        store,
		audit:        audit,
		inflight:     utils.NewURLSet(),
		log:          logger,
	}
}

// Import runs the full pipeline for one listing URL on behalf of an owner.
func (s *ImportService) Import(ctx context.Context, ownerID, url string) (*models.Property, error) {
	url = strings.TrimSpace(url)
	if url == "" || !strings.Contains(url, s.sourceDomain) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	if !s.inflight.Add(url) {
		return nil, fmt.Errorf("%w: %s", ErrImportInFlight, url)
	}
	defer s.inflight.Remove(url)

	s.log.Info("[import] owner=%s url=%s", ownerID, url)

	html, err := s.chain.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	listing, err := s.engine.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	property := &models.Property{
		OwnerID:        ownerID,
		SourceURL:      url,
		CreatedAt:      time.Now(),
		ScrapedListing: *listing,
	}

	// Extraction is the product; persistence problems are logged, not fatal.
	if s.store != nil {
		if err := s.store.Save(property); err != nil {
			s.log.Warn("[import] persist failed for %s: %v", url, err)
		}
	}
	if s.audit != nil {
		if err := s.audit.Append(property); err != nil {
			s.log.Warn("[import] audit write failed for %s: %v", url, err)
		}
	}

	s.log.Info("[import] done: %q (%s), %d images, rating %.2f",
		property.Title, property.Location, len(property.Images), property.Rating)

	return property, nil
}
