package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/growth4u/contentflow/internal/config"
	"github.com/growth4u/contentflow/internal/logger"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/services"
)

var (
	syncInstance *services.ContentSyncFunction
	once         sync.Once
	initErr      error
)

func init() {
	slog.SetDefault(logger.New(os.Stdout, "info"))

	// "HandleSyncContent" is the entry point name configured in GCP.
	functions.HTTP("HandleSyncContent", handleSyncContent)
}

// main is required by the Go Functions Framework.
func main() {}

func handleSyncContent(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel))
		syncInstance, initErr = services.NewContentSync(context.Background(), cfg)
	})
	if initErr != nil {
		slog.Error("Content sync initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	// An empty body is a manual run with defaults.
	req := models.SyncRequest{Trigger: "manual"}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := syncInstance.Process(r.Context(), &req)
	if err != nil {
		http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
