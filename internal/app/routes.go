package app

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/middleware"
)

// routes builds the HTTP surface: health, Prometheus metrics, and the cache
// admin API.
func (a *App) routes() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Logging(a.Logger))

	router.HandleFunc("/health", a.handleHealth).Methods("GET")
	router.Handle("/metrics", a.Metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api/cache").Subrouter()
	api.HandleFunc("/stats", a.handleStats).Methods("GET")
	api.HandleFunc("/invalidate", a.handleInvalidate).Methods("POST")
	api.HandleFunc("/entries/{key}", a.handleGetEntry).Methods("GET")
	api.HandleFunc("/entries/{key}", a.handlePutEntry).Methods("PUT")
	api.HandleFunc("/entries/{key}", a.handleDeleteEntry).Methods("DELETE")

	return router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Cache.Statistics())
}

func (a *App) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	a.Cache.Invalidate(r.Context(), pattern)
	a.Logger.Info("cache invalidated via API", logging.String("pattern", pattern))
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated", "pattern": pattern})
}

func (a *App) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	value, found := a.Cache.Get(r.Context(), key)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "key not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"key": key, "value": value})
}

func (a *App) handlePutEntry(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be JSON"})
		return
	}

	var ttl time.Duration
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ttl"})
			return
		}
	}

	a.Cache.Set(r.Context(), key, value, ttl)
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored", "key": key})
}

func (a *App) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	a.Cache.Delete(r.Context(), key)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "key": key})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
