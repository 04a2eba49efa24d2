package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/evgray/milscope/internal/dataset"
	"github.com/evgray/milscope/pkg/compare"
	"github.com/evgray/milscope/pkg/power"
)

// Server provides the HTTP API consumed by the dashboard frontend. Every
// request recomputes its view from the immutable dataset snapshot.
type Server struct {
	ds         *dataset.Dataset
	engine     *power.Engine
	targetYear int
	limit      int
	port       int
}

// New creates a new HTTP server.
func New(ds *dataset.Dataset, engine *power.Engine, targetYear, limit, port int) *Server {
	if port == 0 {
		port = 8080
	}
	if targetYear == 0 {
		targetYear = power.DefaultTargetYear
	}
	return &Server{
		ds:         ds,
		engine:     engine,
		targetYear: targetYear,
		limit:      limit,
		port:       port,
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/countries", s.handleCountries)
	mux.HandleFunc("/api/v1/strength", s.handleStrength)
	mux.HandleFunc("/api/v1/projection", s.handleProjection)
	mux.HandleFunc("/api/v1/growth", s.handleGrowth)
	mux.HandleFunc("/api/v1/compare", s.handleCompare)
	mux.HandleFunc("/api/v1/budget", s.handleBudget)
	mux.HandleFunc("/api/v1/companies", s.handleCompanies)
	mux.HandleFunc("/api/v1/revenue", s.handleRevenue)
	mux.HandleFunc("/api/v1/trade", s.handleTrade)
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("milscope server listening on %s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	names := s.ds.CountryNames()
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  names,
		"count": len(names),
	})
}

func (s *Server) handleStrength(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	scores := s.engine.CurrentRanking()
	scores = limitStrength(scores, queryInt(r, "limit", s.limit))
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  scores,
		"count": len(scores),
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	year := queryInt(r, "year", s.targetYear)

	recs, err := s.engine.Rank(year)
	if err != nil {
		// Degraded view instead of a crash; the frontend shows a
		// fallback message.
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "prediction unavailable: " + err.Error(),
		})
		return
	}

	recs = limitProjection(recs, queryInt(r, "limit", s.limit))
	writeJSON(w, http.StatusOK, map[string]any{
		"target_year": year,
		"data":        recs,
		"count":       len(recs),
	})
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	recs := s.engine.Growth()
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  recs,
		"count": len(recs),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	raw := r.URL.Query().Get("countries")
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	category := compare.Category(r.URL.Query().Get("category"))

	table, err := compare.Countries(s.ds, names, category)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	country := r.URL.Query().Get("country")
	points, err := compare.BudgetHistory(s.ds, country)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"country": country,
		"data":    points,
		"count":   len(points),
	})
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	names := compare.CompanyNames(s.ds)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  names,
		"count": len(names),
	})
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	report, err := compare.CompanyRevenue(s.ds, r.URL.Query().Get("company"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	report, err := compare.TradeBalance(s.ds, r.URL.Query().Get("country"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func limitStrength(scores []power.StrengthScore, limit int) []power.StrengthScore {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

func limitProjection(recs []power.ProjectionRecord, limit int) []power.ProjectionRecord {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
