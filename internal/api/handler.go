package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/0xPuncker/network-config/internal/chain"
	"github.com/0xPuncker/network-config/internal/config"
	"github.com/0xPuncker/network-config/internal/cron"
	"github.com/0xPuncker/network-config/internal/deploy"
	"github.com/0xPuncker/network-config/internal/notifications"
	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	registry  *chain.Registry
	planner   *deploy.Planner
	logger    *logrus.Logger
	config    *config.Config
	Scheduler *cron.Scheduler
}

type NetworksResponse struct {
	Networks          []types.Network `json:"networks"`
	DevelopmentChains []string        `json:"development_chains"`
	LastUpdated       time.Time       `json:"last_updated"`
}

// NewHandler wires the scheduler with the audit task and, when slack is non-nil,
// failure notifications.
func NewHandler(registry *chain.Registry, planner *deploy.Planner, slack *notifications.SlackService, logger *logrus.Logger, cfg *config.Config) (*Handler, error) {
	scheduler := cron.NewScheduler(logger, cfg.Jobs)

	var alerter cron.Alerter
	if slack != nil {
		notifier := notifications.NewNotificationService(slack)
		alerter = notifier
		scheduler.OnFailure(func(jobName string, duration time.Duration, err error) {
			if sendErr := notifier.SendJobNotification(jobName, "failed", duration, err.Error()); sendErr != nil {
				logger.Errorf("Failed to send job notification: %v", sendErr)
			}
		})
	}

	audit := cron.NewAuditJob(registry.Table(), logger, alerter)
	scheduler.RegisterTask("audit-networks", audit.Run)

	if err := scheduler.LoadPredefinedJobs(cfg.Jobs.Predefined); err != nil {
		return nil, fmt.Errorf("failed to load predefined jobs: %w", err)
	}

	return &Handler{
		registry:  registry,
		planner:   planner,
		logger:    logger,
		config:    cfg,
		Scheduler: scheduler,
	}, nil
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"networks": h.registry.Table().Len(),
	})
}

func (h *Handler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, NetworksResponse{
		Networks:          h.registry.ListNetworks(),
		DevelopmentChains: h.registry.DevelopmentChains(),
		LastUpdated:       time.Now(),
	})
}

func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	chainID, err := chainIDVar(r)
	if err != nil {
		h.handleError(w, err, http.StatusBadRequest)
		return
	}

	network, err := h.registry.GetNetwork(chainID)
	if err != nil {
		h.handleError(w, err, http.StatusNotFound)
		return
	}

	h.writeJSON(w, network)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	chainID, err := chainIDVar(r)
	if err != nil {
		h.handleError(w, err, http.StatusBadRequest)
		return
	}

	plan, err := h.planner.Plan(chainID, r.URL.Query().Get("network"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, deploy.ErrUnknownChain) {
			code = http.StatusNotFound
		}
		h.handleError(w, err, code)
		return
	}

	h.writeJSON(w, plan)
}

func (h *Handler) GetDevelopmentChains(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string][]string{
		"development_chains": h.registry.DevelopmentChains(),
	})
}

func (h *Handler) GetMockFeed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.registry.MockFeed())
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.Scheduler.ListJobs()
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	h.writeJSON(w, map[string]interface{}{
		"jobs":        jobs,
		"active_jobs": len(jobs),
	})
}

func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobName := vars["name"]

	enabled, description, err := h.Scheduler.GetJobStatus(jobName)
	if err != nil {
		h.handleError(w, err, http.StatusNotFound)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"name":        jobName,
		"enabled":     enabled,
		"description": description,
	})
}

func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	if err := h.Scheduler.Start(); err != nil {
		h.handleError(w, err, http.StatusConflict)
		return
	}

	h.writeJSON(w, map[string]string{
		"status": "scheduler started successfully",
	})
}

func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	h.Scheduler.Stop()
	h.writeJSON(w, map[string]string{
		"status": "scheduler stopped successfully",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error, code int) {
	h.logger.Error(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}

func chainIDVar(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["chainId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q", raw)
	}
	return id, nil
}
