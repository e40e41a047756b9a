package ingestion

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles HTTP POST requests for observation ingestion.
func (s *Service) IngestHandler(c *gin.Context) {
	obs, payloadSize, ingErr := s.parseObservation(c)
	if ingErr != nil {
		writeError(c, ingErr)
		return
	}

	slog.Debug("Received Observation",
		"model", obs.Model,
		"device_id", obs.ID,
		"properties", len(obs.Properties),
		"payload_size", payloadSize)

	result, err := s.processor.Process(c.Request.Context(), SourceHTTP, obs)
	if err != nil {
		httperr.WriteFailure(c, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// parseObservation reads the raw request body and decodes it into an Observation.
// Returns the parsed observation and the raw payload size (used for structured logging upstream).
func (s *Service) parseObservation(c *gin.Context) (*v1.Observation, int, *ingestionError) {
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

	var obs v1.Observation
	if err := c.ShouldBindJSON(&obs); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		details := interface{}(nil)
		if !errors.Is(err, io.EOF) {
			details = err.Error()
		}
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    details,
		}
	}

	return &obs, len(bodyBytes), nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
