package ingestion

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/hybrid-events/internal/core/errors"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	"github.com/aevon-lab/hybrid-events/internal/importer"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgNotFound       = "not found"
	msgMissingTS      = "missing query param 'ts' (ISO-8601 like 2026-01-30T12:34:56Z)"
	msgInvalidTS      = "invalid ts; use ISO-8601 like 2026-01-30T12:34:56Z"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

func notFound() *ingestionError {
	return &ingestionError{
		statusCode: http.StatusNotFound,
		errorType:  httperr.HttpNotFoundError,
		message:    msgNotFound,
	}
}

// classify maps repository and importer errors onto HTTP errors.
// Anything unrecognised is a 500 that surfaces the error message.
func (s *Service) classify(err error, op string) *ingestionError {
	switch {
	case errors.Is(err, storage.ErrInvalidEvent):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		}
	case errors.Is(err, storage.ErrInvalidIdentifier):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidIdentifierError,
			message:    err.Error(),
		}
	case errors.Is(err, importer.ErrPathRequired):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		}
	case errors.Is(err, importer.ErrSourceNotFound):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpSourceNotFoundError,
			message:    err.Error(),
		}
	case errors.Is(err, importer.ErrMalformedSource):
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}

	slog.Error("Request failed", "operation", op, "error", err)
	ie := &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    fmt.Sprintf("%s: %v", op, err),
	}
	if s.debug {
		ie.details = map[string]interface{}{"error_class": errorClass(err)}
	}
	return ie
}

// errorClass names the Go type of the innermost wrapped error.
func errorClass(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
