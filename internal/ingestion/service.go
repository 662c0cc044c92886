package ingestion

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/perfcube-lab/perfcube/internal/core/storage"
)

type Service struct {
	store            storage.RecordStore
	references       storage.ReferenceWriter
	maxBodySizeBytes int
	nowFn            func() time.Time
}

// NewService creates the ingestion service. references may be nil when
// baselines come from the catalog; PUT /v1/references is then not served.
func NewService(store storage.RecordStore, references storage.ReferenceWriter, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		references:       references,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/records", s.IngestHandler)
	if s.references != nil {
		r.PUT("/v1/references", s.ReferencesHandler)
	}
}
