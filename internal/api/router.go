package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agro-advisor/internal/app"
	"agro-advisor/internal/common/logger"
)

type Server struct {
	app *app.App
	log logger.Logger
}

func NewServer(a *app.App, log logger.Logger) *Server {
	return &Server{app: a, log: log.WithFields(map[string]interface{}{"component": "api"})}
}

// Router builds the mux with health, readiness, metrics and the /api/v1 routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument, s.recoverer)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.getSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/dashboard", s.dashboard).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/chat", s.sendChat).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/chat", s.transcript).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/simulations", s.simulate).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/products/selected", s.selectedProducts).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}/products/{productId}/toggle", s.toggleProduct).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/location", s.lookupLocation).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/voice/toggle", s.toggleVoice).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/connectivity/toggle", s.toggleConnectivity).Methods(http.MethodPost)
	v1.HandleFunc("/speech", s.speech).Methods(http.MethodPost)
	v1.HandleFunc("/simulator/options", s.simulatorOptions).Methods(http.MethodGet)
	v1.HandleFunc("/products", s.searchProducts).Methods(http.MethodGet)

	return r
}
