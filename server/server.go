package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"treehouse-importer/models"
	"treehouse-importer/services"
	"treehouse-importer/storage"
	"treehouse-importer/utils"
)

// Server exposes the import pipeline over HTTP.
type Server struct {
	importSvc  *services.ImportService
	insightSvc *services.InsightService
	store      storage.PropertyStore
	log        *utils.Logger
	router     *mux.Router
}

// New creates a Server with all routes registered. store may be nil when the
// service runs extract-only.
func New(importSvc *services.ImportService, insightSvc *services.InsightService,
	store storage.PropertyStore, logger *utils.Logger) *Server {
	s := &Server{
		importSvc:  importSvc,
		insightSvc: insightSvc,
		store:      store,
		log:        logger,
		router:     mux.NewRouter(),
	}

	s.router.HandleFunc("/api/import", s.handleImport).Methods("POST")
	s.router.HandleFunc("/api/properties", s.handleProperties).Methods("GET")
	s.router.HandleFunc("/api/stats", s.handleStats).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	return s
}

// Router returns the configured HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

type importRequest struct {
	URL     string `json:"url"`
	OwnerID string `json:"ownerId"`
}

type importResponse struct {
	Data *models.ScrapedListing `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.OwnerID == "" {
		req.OwnerID = "anonymous"
	}

	property, err := s.importSvc.Import(r.Context(), req.OwnerID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidURL):
			s.writeError(w, http.StatusBadRequest, "Invalid listing URL", err.Error())
		case errors.Is(err, services.ErrImportInFlight):
			s.writeError(w, http.StatusConflict, "Import already in progress", err.Error())
		case errors.Is(err, services.ErrFetchFailed):
			s.writeError(w, http.StatusBadGateway,
				"Failed to fetch the listing. Please try again or enter details manually.", err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError,
				"Failed to import the listing. Please try again or enter details manually.", err.Error())
		}
		return
	}

	s.writeJSON(w, http.StatusOK, importResponse{Data: &property.ScrapedListing})
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", "")
		return
	}

	var (
		properties []*models.Property
		err        error
	)
	if owner := r.URL.Query().Get("owner"); owner != "" {
		properties, err = s.store.FetchByOwner(owner)
	} else {
		properties, err = s.store.FetchAll()
	}
	if err != nil {
		s.log.Error("[server] fetch properties: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load properties", "")
		return
	}

	if properties == nil {
		properties = []*models.Property{}
	}
	s.writeJSON(w, http.StatusOK, properties)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Persistence is not configured", "")
		return
	}

	properties, err := s.store.FetchAll()
	if err != nil {
		s.log.Error("[server] fetch properties for stats: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to compute stats", "")
		return
	}

	s.writeJSON(w, http.StatusOK, s.insightSvc.Generate(properties))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("[server] encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, details string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Details: details})
}
