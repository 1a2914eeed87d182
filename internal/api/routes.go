package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func SetupRoutes(router *mux.Router, handler *Handler) {
	router.HandleFunc("/api/v1/health", handler.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/networks", handler.ListNetworks).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/networks/{chainId}", handler.GetNetwork).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/networks/{chainId}/plan", handler.GetPlan).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/development-chains", handler.GetDevelopmentChains).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/mock-feed", handler.GetMockFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/jobs", handler.ListJobs).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/jobs/{name}", handler.GetJobStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/scheduler/start", handler.StartScheduler).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/scheduler/stop", handler.StopScheduler).Methods(http.MethodPost)
}

// NewRouter returns a router with logging and CORS middleware and every route registered.
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware(handler.logger))
	router.Use(corsMiddleware)
	SetupRoutes(router, handler)
	return router
}
