package pipeline

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/models"
)

// StartService starts the HTTP service at the given port
func (pl *pipeline) StartService(port string) {
	logger.Log.Info("Starting HTTP service", zap.String("port", port))
	startHTTP(pl, port)
}

// Starts the HTTP service. Handles async enrichment submissions, job status
// polling, and provides /health and /metrics endpoints for monitoring.
func startHTTP(pl *pipeline, port string) {
	http.HandleFunc("/enrich", func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload struct {
			Companies []models.CompanyRecord `json:"companies"`
		}
		if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
			http.Error(writer, "failed to decode request", http.StatusBadRequest)
			logger.Log.Warn("Failed to decode enrichment request", zap.Error(err))
			return
		}
		if len(payload.Companies) == 0 {
			http.Error(writer, "companies list is empty", http.StatusBadRequest)
			return
		}

		jobID, err := pl.EnqueueEnrichment(payload.Companies)
		if err != nil {
			http.Error(writer, "failed to enqueue job", http.StatusServiceUnavailable)
			logger.Log.Error("Failed to enqueue enrichment job", zap.Error(err))
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusAccepted)
		json.NewEncoder(writer).Encode(map[string]string{"job_id": jobID})
	})

	http.HandleFunc("/jobs/", func(writer http.ResponseWriter, request *http.Request) {
		id := strings.TrimPrefix(request.URL.Path, "/jobs/")
		if id == "" {
			http.Error(writer, "missing job id", http.StatusBadRequest)
			return
		}

		job, ok := pl.JobStatus(id)
		if !ok {
			http.Error(writer, "job not found", http.StatusNotFound)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(job)
	})

	// /metrics endpoint for Prometheus
	http.Handle("/metrics", promhttp.Handler())

	// /health endpoint
	http.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {
		health := struct {
			Status     string    `json:"status"`
			QueueDepth int       `json:"queue_depth"`
			Workers    int       `json:"workers"`
			Uptime     string    `json:"uptime"`
			StartTime  time.Time `json:"start_time"`
		}{
			Status:     "OK",
			QueueDepth: pl.QueueDepth(),
			Workers:    pl.WorkerCount(),
			Uptime:     time.Since(pl.StartTime()).String(),
			StartTime:  pl.StartTime(),
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(health)
	})

	logger.Log.Info("HTTP service listening", zap.String("address", ":"+port))

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Log.Fatal("Failed to start HTTP service", zap.Error(err))
	}
}
