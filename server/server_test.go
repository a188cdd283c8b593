package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"treehouse-importer/extractor"
	"treehouse-importer/fetcher"
	"treehouse-importer/models"
	"treehouse-importer/services"
	"treehouse-importer/utils"
)

const listingPage = `<html><head>
<title>Sky Cabin - Treehouse for rent in Asheville, North Carolina</title>
</head><body>
<h1 data-testid="listing-title">Sky Cabin</h1>
<div data-testid="listing-description">A quiet cabin up in the canopy with views over the valley.</div>
<span data-testid="price">$180 night</span>
<div>4 guests · 2 bedrooms · 1 bathroom</div>
</body></html>`

type stubStrategy struct {
	html string
	err  error
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Fetch(ctx context.Context, url string) (string, error) {
	return s.html, s.err
}

type memoryStore struct {
	saved []*models.Property
}

func (m *memoryStore) Save(p *models.Property) error {
	m.saved = append(m.saved, p)
	return nil
}

func (m *memoryStore) FetchAll() ([]*models.Property, error) { return m.saved, nil }

func (m *memoryStore) FetchByOwner(ownerID string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range m.saved {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) Close() error { return nil }

func newTestServer(strategy fetcher.Strategy, store *memoryStore) *Server {
	logger := utils.NewLogger(false)
	chain := fetcher.NewChain(logger, strategy)
	engine := extractor.NewEngine(logger)
	importSvc := services.NewImportService("airbnb.com", chain, engine, store, nil, logger)
	insightSvc := services.NewInsightService(logger)
	return New(importSvc, insightSvc, store, logger)
}

func postImport(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestImportEndpoint(t *testing.T) {
	store := &memoryStore{}
	srv := newTestServer(&stubStrategy{html: listingPage}, store)

	rec := postImport(t, srv,
		`{"url":"https://www.airbnb.com/rooms/777","ownerId":"owner-7"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Data *models.ScrapedListing `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data == nil {
		t.Fatal("response data should not be nil")
	}
	if resp.Data.Title != "Sky Cabin" {
		t.Errorf("title: got %q, want %q", resp.Data.Title, "Sky Cabin")
	}
	if resp.Data.Price != 180 {
		t.Errorf("price: got %d, want 180", resp.Data.Price)
	}
	if len(store.saved) != 1 {
		t.Errorf("store should hold 1 property, got %d", len(store.saved))
	}
}

func TestImportEndpointRejectsForeignURL(t *testing.T) {
	srv := newTestServer(&stubStrategy{html: listingPage}, &memoryStore{})

	rec := postImport(t, srv, `{"url":"https://www.vrbo.com/12345"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error message should not be empty")
	}
}

func TestImportEndpointRejectsBadBody(t *testing.T) {
	srv := newTestServer(&stubStrategy{html: listingPage}, &memoryStore{})

	rec := postImport(t, srv, `{"url": not-json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestImportEndpointFetchFailure(t *testing.T) {
	srv := newTestServer(&stubStrategy{err: errors.New("connection refused")}, &memoryStore{})

	rec := postImport(t, srv, `{"url":"https://www.airbnb.com/rooms/777"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "enter details manually") {
		t.Errorf("error should suggest manual entry, got %q", resp.Error)
	}
}

func TestPropertiesEndpoint(t *testing.T) {
	store := &memoryStore{saved: []*models.Property{
		{OwnerID: "a", SourceURL: "https://www.airbnb.com/rooms/1"},
		{OwnerID: "b", SourceURL: "https://www.airbnb.com/rooms/2"},
	}}
	srv := newTestServer(&stubStrategy{html: listingPage}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/properties?owner=a", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var got []*models.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != "a" {
		t.Errorf("owner filter: got %d properties, want 1 for owner a", len(got))
	}
}

func TestPropertiesEndpointWithoutStore(t *testing.T) {
	logger := utils.NewLogger(false)
	chain := fetcher.NewChain(logger, &stubStrategy{html: listingPage})
	engine := extractor.NewEngine(logger)
	importSvc := services.NewImportService("airbnb.com", chain, engine, nil, nil, logger)
	srv := New(importSvc, services.NewInsightService(logger), nil, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestStatsEndpoint(t *testing.T) {
	store := &memoryStore{saved: []*models.Property{
		{ScrapedListing: models.ScrapedListing{Title: "A", Price: 100, Rating: 4.5, Location: "Austin, Texas"}},
		{ScrapedListing: models.ScrapedListing{Title: "B", Price: 300, Rating: 4.9, Location: "Austin, Texas"}},
	}}
	srv := newTestServer(&stubStrategy{html: listingPage}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var report models.StatsReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.TotalProperties != 2 {
		t.Errorf("total: got %d, want 2", report.TotalProperties)
	}
	if report.AveragePrice != 200 {
		t.Errorf("average price: got %.2f, want 200", report.AveragePrice)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubStrategy{html: listingPage}, &memoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}
