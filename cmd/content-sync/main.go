package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

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

// pubSubMessage is the data of a Pub/Sub CloudEvent. Message.Data is base64
// in the wire format and decoded by encoding/json into the byte slice.
type pubSubMessage struct {
	Message struct {
		Data      []byte `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

func init() {
	slog.SetDefault(logger.New(os.Stdout, "info"))

	// Cloud Scheduler publishes to the topic this function subscribes to.
	functions.CloudEvent("SyncContent", syncContent)
}

// main is required by the Go Functions Framework.
func main() {}

func syncContent(ctx context.Context, e cloudevents.Event) error {
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
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	req, err := decodeSyncRequest(e)
	if err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return err
	}

	// Per-candidate failures never surface here, so a returned error only
	// means the run could not start and a Pub/Sub retry is worthwhile.
	_, err = syncInstance.Process(ctx, req)
	return err
}

// decodeSyncRequest reads the optional SyncRequest published by the
// scheduler. An empty message body starts a run with defaults.
func decodeSyncRequest(e cloudevents.Event) (*models.SyncRequest, error) {
	var msg pubSubMessage
	if err := json.Unmarshal(e.Data(), &msg); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	req := &models.SyncRequest{}
	if len(msg.Message.Data) > 0 {
		if err := json.Unmarshal(msg.Message.Data, req); err != nil {
			return nil, fmt.Errorf("failed to decode sync request: %w", err)
		}
	}
	if req.Trigger == "" {
		req.Trigger = "scheduler"
	}
	if req.ExecutionID == "" {
		req.ExecutionID = msg.Message.MessageID
	}
	if req.ExecutionID == "" {
		req.ExecutionID = e.ID()
	}
	return req, nil
}
