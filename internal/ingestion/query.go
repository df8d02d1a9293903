package ingestion

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	httperr "github.com/aevon-lab/hybrid-events/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// ListEventsHandler handles GET /events. Every stored event is returned.
func (s *Service) ListEventsHandler(c *gin.Context) {
	events, err := s.repo.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, s.classify(err, "list events"))
		return
	}
	if events == nil {
		events = []*v1.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GetByBusinessIDHandler handles GET /events/by-id/:id.
func (s *Service) GetByBusinessIDHandler(c *gin.Context) {
	evt, found, err := s.repo.FindByBusinessID(c.Request.Context(), c.Param("id"))
	s.writeLookup(c, evt, found, err, "find by id")
}

// GetByStoreIDHandler handles GET /events/by-store-id/:storeId.
// A malformed store id is a 400 and never reaches the store.
func (s *Service) GetByStoreIDHandler(c *gin.Context) {
	evt, found, err := s.repo.FindByStoreID(c.Request.Context(), c.Param("storeId"))
	s.writeLookup(c, evt, found, err, "find by store id")
}

// GetByTimestampHandler handles GET /events/by-event-ts?ts=<RFC 3339>.
func (s *Service) GetByTimestampHandler(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ts"))
	if raw == "" {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    msgMissingTS,
		})
		return
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		slog.Warn("Invalid ts query parameter", "ts", raw, "error", err)
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    msgInvalidTS,
		})
		return
	}

	evt, found, err := s.repo.FindByTimestamp(c.Request.Context(), ts)
	s.writeLookup(c, evt, found, err, "find by event ts")
}

func (s *Service) writeLookup(c *gin.Context, evt *v1.Event, found bool, err error, op string) {
	if err != nil {
		writeError(c, s.classify(err, op))
		return
	}
	if !found {
		writeError(c, notFound())
		return
	}
	c.JSON(http.StatusOK, evt)
}
