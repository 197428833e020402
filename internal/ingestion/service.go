package ingestion

import (
	"context"

	"github.com/gin-gonic/gin"

	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/aggregation"
)

// Submitter decides the outcome of one signal.
type Submitter interface {
	Submit(ctx context.Context, sig v1.Signal) (aggregation.Result, error)
}

type Service struct {
	aggregator       Submitter
	maxBodySizeBytes int
}

func NewService(agg Submitter, maxBodySizeMB int) *Service {
	if agg == nil {
		panic("ingestion: aggregator must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		aggregator:       agg,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/v1/outages", s.IngestHandler)
}
