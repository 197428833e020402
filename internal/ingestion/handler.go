package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/aggregation"
	httperr "github.com/gridwatch-lab/outage-events/internal/core/errors"
	"github.com/gridwatch-lab/outage-events/internal/core/lock"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body"
	msgStoreUnavailable = "Event store unavailable, retry the record"
	msgLockBusy         = "Timed out waiting for concurrent records of the same key, retry the record"
	msgInconsistent     = "Latest event vanished during update"
	msgSubmitFailed     = "Failed to process record"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
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

// IngestHandler handles HTTP POST requests carrying one outage signal.
// Created and Extended answer 202, stale and duplicate records answer 409;
// both carry a message echoing the record.
func (s *Service) IngestHandler(c *gin.Context) {
	sig, payloadSize, err := s.parseSignal(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := validateSignal(sig); err != nil {
		writeError(c, err)
		return
	}

	slog.Debug("Received Signal",
		"controller_id", sig.ControllerID,
		"outage_type", sig.OutageType,
		"timestamp", sig.Timestamp.String(),
		"payload_size", payloadSize)

	res, err := s.submit(c.Request.Context(), sig)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusAccepted
	if res.Outcome.Rejected() {
		status = http.StatusConflict
	}
	c.JSON(status, httperr.MessageResponse{Message: res.Message})
}

// parseSignal reads the raw request body and binds it into a Signal.
// Returns the parsed signal and the raw payload size (used for structured logging upstream).
func (s *Service) parseSignal(c *gin.Context) (*v1.Signal, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var sig v1.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details: map[string]interface{}{
				"reason": err.Error(),
			},
		}
	}

	return &sig, len(bodyBytes), nil
}

// validateSignal rejects malformed records before they reach the aggregator.
func validateSignal(sig *v1.Signal) *ingestionError {
	if err := sig.Validate(); err != nil {
		slog.Warn("Signal validation failed", "error", err, "controller_id", sig.ControllerID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		}
	}
	return nil
}

// submit hands the signal to the aggregator and maps failures to HTTP errors.
func (s *Service) submit(ctx context.Context, sig *v1.Signal) (aggregation.Result, *ingestionError) {
	res, err := s.aggregator.Submit(ctx, *sig)
	if err == nil {
		return res, nil
	}

	switch {
	case errors.Is(err, aggregation.ErrInconsistent):
		return res, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInconsistentStateError,
			message:    msgInconsistent,
			details: map[string]interface{}{
				"key": sig.Key().String(),
			},
		}
	case errors.Is(err, lock.ErrTimeout):
		return res, &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgLockBusy,
		}
	case errors.Is(err, storage.ErrUnavailable):
		return res, &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgStoreUnavailable,
		}
	default:
		slog.Error("Failed to process signal", "error", err, "controller_id", sig.ControllerID)
		return res, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgSubmitFailed,
		}
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
