package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	httperr "github.com/perfcube-lab/perfcube/internal/core/errors"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

const (
	msgReadBodyFailed     = "Failed to read request body"
	msgInvalidJSON        = "Invalid JSON body"
	msgPersistFailed      = "Failed to persist record"
	msgDuplicateRecord    = "Record already exists"
	msgReferencesRejected = "Failed to store reference values"
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

// recordBatch is the batch form of the ingest body. A body without a
// "records" key is read as a single record.
type recordBatch struct {
	Records []*v1.Record `json:"records"`
}

// IngestHandler handles POST /v1/records.
func (s *Service) IngestHandler(c *gin.Context) {
	body, ierr := s.readBody(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	records, single, ierr := parseRecords(body)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	if ierr := s.prepareRecords(records); ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Info("[Ingestion] Received records",
		"count", len(records),
		"payload_size", len(body))

	ids, duplicates, ierr := s.persistRecords(c.Request.Context(), records, single)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "accepted",
		"ids":        ids,
		"duplicates": duplicates,
	})
}

// ReferencesHandler handles PUT /v1/references.
func (s *Service) ReferencesHandler(c *gin.Context) {
	body, ierr := s.readBody(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	var req struct {
		References []storage.ReferenceValue `json:"references"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		})
		return
	}
	for i, ref := range req.References {
		if strings.TrimSpace(ref.Test) == "" || strings.TrimSpace(ref.Platform) == "" || strings.TrimSpace(ref.Site) == "" {
			writeError(c, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpRecordValidation,
				message:    "test, platform and site are required",
				details:    map[string]interface{}{"index": i},
			})
			return
		}
	}

	if err := s.references.UpsertReferences(c.Request.Context(), req.References); err != nil {
		slog.Error("[Ingestion] Failed to store reference values", "error", err, "count", len(req.References))
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReferencesRejected,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "stored", "count": len(req.References)})
}

// readBody reads the raw request body, enforcing the configured size limit.
func (s *Service) readBody(c *gin.Context) ([]byte, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return bodyBytes, nil
}

// parseRecords decodes either a single record or a {"records": [...]} batch.
// single reports which form was sent.
func parseRecords(body []byte) (records []*v1.Record, single bool, ierr *ingestionError) {
	invalid := func(err error) *ingestionError {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(body))
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, false, invalid(err)
	}

	if _, ok := probe["records"]; ok {
		var batch recordBatch
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, false, invalid(err)
		}
		if len(batch.Records) == 0 {
			return nil, false, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpRecordValidation,
				message:    "records must not be empty",
			}
		}
		return batch.Records, false, nil
	}

	var rec v1.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, true, invalid(err)
	}
	return []*v1.Record{&rec}, true, nil
}

// prepareRecords assigns missing ids, stamps IngestedAt and validates every
// record. Nothing is persisted when any record is invalid.
func (s *Service) prepareRecords(records []*v1.Record) *ingestionError {
	now := s.nowFn()
	for i, rec := range records {
		if rec == nil {
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpRecordValidation,
				message:    "record must not be null",
				details:    map[string]interface{}{"index": i},
			}
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.IngestedAt = now
		rec.PushTimestamp = rec.PushTimestamp.UTC()

		if err := rec.Validate(); err != nil {
			slog.Warn("[Ingestion] Record validation failed", "error", err, "record_id", rec.ID, "index", i)
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpRecordValidation,
				message:    err.Error(),
				details:    map[string]interface{}{"index": i, "id": rec.ID},
			}
		}
	}
	return nil
}

// persistRecords saves records in order. A duplicate rejects a single-record
// request with 409; inside a batch it is skipped and reported.
func (s *Service) persistRecords(ctx context.Context, records []*v1.Record, single bool) ([]string, []string, *ingestionError) {
	ids := make([]string, 0, len(records))
	duplicates := []string{}

	for _, rec := range records {
		if err := s.store.SaveRecord(ctx, rec); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				slog.Info("[Ingestion] Duplicate record rejected", "record_id", rec.ID)
				if single {
					return nil, nil, &ingestionError{
						statusCode: http.StatusConflict,
						errorType:  httperr.HttpDuplicateRecordError,
						message:    msgDuplicateRecord,
						details:    map[string]interface{}{"id": rec.ID},
					}
				}
				duplicates = append(duplicates, rec.ID)
				continue
			}

			slog.Error("[Ingestion] Failed to persist record", "error", err, "record_id", rec.ID)
			return nil, nil, &ingestionError{
				statusCode: http.StatusInternalServerError,
				errorType:  httperr.HttpInternalError,
				message:    msgPersistFailed,
				details:    map[string]interface{}{"id": rec.ID, "persisted": len(ids)},
			}
		}
		ids = append(ids, rec.ID)
	}

	return ids, duplicates, nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
