// Package httpapi exposes the engine over HTTP: a synchronous POST /v1/align
// endpoint for ops debugging and the batch driver's own health checks, and a
// GET /healthz liveness/readiness probe.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/engine"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/logger"
)

var validate = validator.New()

// Server wires the domain engine behind an HTTP router.
type Server struct {
	Store   *config.Store
	Gateway engine.CatalogGateway
	Logger  logger.Logger
}

// NewRouter builds the gorilla/mux router for the Server's routes.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/align", s.handleAlign).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	return r
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var pred entities.Prediction
	if err := json.NewDecoder(r.Body).Decode(&pred); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(pred); err != nil {
		http.Error(w, "invalid prediction: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	result, err := engine.Align(r.Context(), s.Store, s.Gateway, pred)
	if err != nil {
		s.Logger.Error("alignment failed", err, "name", pred.Name, "request_id", requestID)
		http.Error(w, "alignment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	result.RequestID = requestID

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.Gateway.IsConnected() {
		http.Error(w, `{"status":"unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
