package services

import (
	"context"
	"errors"
	"testing"

	"treehouse-importer/extractor"
	"treehouse-importer/fetcher"
	"treehouse-importer/models"
	"treehouse-importer/storage"
	"treehouse-importer/utils"
)

type stubStrategy struct {
	html  string
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Fetch(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.html, s.err
}

type memoryStore struct {
	saved []*models.Property
}

func (m *memoryStore) Save(p *models.Property) error { m.saved = append(m.saved, p); return nil }
func (m *memoryStore) FetchAll() ([]*models.Property, error) { return m.saved, nil }
func (m *memoryStore) FetchByOwner(owner string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range m.saved {
		if p.OwnerID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memoryStore) Close() error { return nil }

const listingPage = `<html><head>
<script type="application/ld+json">{"@type":"VacationRental","name":"Sky Cabin","address":{"addressLocality":"Austin","addressRegion":"Texas"}}</script>
</head><body><p>2 guests 1 bedroom 1 bathroom with WiFi</p></body></html>`

func newTestImporter(strategy fetcher.Strategy, store storage.PropertyStore) *ImportService {
	logger := utils.NewLogger(false)
	chain := fetcher.NewChain(logger, strategy)
	engine := extractor.NewEngine(logger)
	return NewImportService("airbnb.com", chain, engine, store, nil, logger)
}

func TestImportRejectsForeignURL(t *testing.T) {
	strategy := &stubStrategy{html: listingPage}
	svc := newTestImporter(strategy, nil)

	_, err := svc.Import(context.Background(), "owner-1", "https://example.com/rooms/1")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if strategy.calls != 0 {
		t.Errorf("fetch ran %d times; rejected input must not be fetched", strategy.calls)
	}
}

func TestImportRejectsEmptyURL(t *testing.T) {
	svc := newTestImporter(&stubStrategy{html: listingPage}, nil)

	if _, err := svc.Import(context.Background(), "owner-1", "   "); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestImportSurfacesFetchFailure(t *testing.T) {
	svc := newTestImporter(&stubStrategy{err: errors.New("blocked")}, nil)

	_, err := svc.Import(context.Background(), "owner-1", "https://www.airbnb.com/rooms/1")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestImportSurfacesEmptyDocument(t *testing.T) {
	svc := newTestImporter(&stubStrategy{html: "   "}, nil)

	_, err := svc.Import(context.Background(), "owner-1", "https://www.airbnb.com/rooms/1")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestImportPersistsForOwner(t *testing.T) {
	store := &memoryStore{}
	svc := newTestImporter(&stubStrategy{html: listingPage}, store)

	property, err := svc.Import(context.Background(), "owner-1", "https://www.airbnb.com/rooms/42")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if property.Title != "Sky Cabin" {
		t.Errorf("Title: got %q", property.Title)
	}
	if property.Location != "Austin, Texas" {
		t.Errorf("Location: got %q", property.Location)
	}
	if property.OwnerID != "owner-1" {
		t.Errorf("OwnerID: got %q", property.OwnerID)
	}
	if property.SourceURL != "https://www.airbnb.com/rooms/42" {
		t.Errorf("SourceURL: got %q", property.SourceURL)
	}

	if len(store.saved) != 1 {
		t.Fatalf("store: got %d saved properties, want 1", len(store.saved))
	}
	if store.saved[0] != property {
		t.Error("the returned property should be the persisted one")
	}
}

func TestImportWorksWithoutStore(t *testing.T) {
	svc := newTestImporter(&stubStrategy{html: listingPage}, nil)

	property, err := svc.Import(context.Background(), "owner-1", "https://www.airbnb.com/rooms/1")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if property.Guests != 2 || property.Bedrooms != 1 || property.Bathrooms != 1 {
		t.Errorf("capacity: got %d/%d/%d", property.Guests, property.Bedrooms, property.Bathrooms)
	}
}
