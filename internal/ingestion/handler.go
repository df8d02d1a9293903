package ingestion

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/bus"
	httperr "github.com/aevon-lab/hybrid-events/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// originAPI marks announcements for caller-supplied events.
const originAPI = "api"

type importRequest struct {
	Path string `json:"path"`
}

// InsertHandler handles POST /events. The stored event is returned with its store id.
func (s *Service) InsertHandler(c *gin.Context) {
	var evt v1.Event
	if err := s.bindBody(c, &evt); err != nil {
		writeError(c, err)
		return
	}

	stored, err := s.repo.InsertOne(c.Request.Context(), &evt)
	if err != nil {
		writeError(c, s.classify(err, "insert event"))
		return
	}

	slog.Info("Inserted event", "business_id", stored.BusinessID, "store_id", stored.StoreID)
	s.announce(c.Request.Context(), stored)

	c.JSON(http.StatusCreated, stored)
}

// InsertBatchHandler handles POST /events/batch.
func (s *Service) InsertBatchHandler(c *gin.Context) {
	var events []*v1.Event
	if err := s.bindBody(c, &events); err != nil {
		writeError(c, err)
		return
	}

	inserted, err := s.repo.InsertMany(c.Request.Context(), events)
	if err != nil {
		writeError(c, s.classify(err, "insert batch"))
		return
	}

	slog.Info("Inserted batch", "count", inserted)
	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}

// ImportFileHandler handles POST /events/import-file with body {"path": "..."}.
func (s *Service) ImportFileHandler(c *gin.Context) {
	var req importRequest
	if err := s.bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	events, err := s.loader.Load(ctx, req.Path)
	if err != nil {
		writeError(c, s.classify(err, "load import source"))
		return
	}

	inserted, err := s.repo.InsertMany(ctx, events)
	if err != nil {
		writeError(c, s.classify(err, "import events"))
		return
	}

	slog.Info("Imported events", "path", req.Path, "count", inserted)
	c.JSON(http.StatusOK, gin.H{"inserted": inserted, "path": req.Path})
}

// bindBody reads the request body under the size limit and decodes it into dst.
func (s *Service) bindBody(c *gin.Context, dst interface{}) *ingestionError {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return nil
}

func (s *Service) announce(ctx context.Context, evt *v1.Event) {
	msg := bus.EventInserted{
		StoreID:        evt.StoreID,
		BusinessID:     evt.BusinessID,
		EventTimestamp: evt.EventTimestamp,
		Origin:         originAPI,
	}
	if err := s.publisher.Publish(ctx, s.subject, msg); err != nil {
		slog.Warn("Failed to announce event", "store_id", evt.StoreID, "error", err)
	}
}
