package api

import (
	"net/http"
	"point-set-service/internal/api/handlers"
	"point-set-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.PointSetService, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	setHandler := &handlers.PointSetHandler{
		Service:      svc,
		MaxBodyBytes: maxBodyBytes,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/point-sets", setHandler.Collection)
	mux.HandleFunc("/point-sets/{id}", setHandler.Item)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
