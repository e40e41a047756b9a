package ingestion

import (
	"github.com/gin-gonic/gin"
)

type Service struct {
	processor        Processor
	maxBodySizeBytes int
}

func NewService(processor Processor, maxBodySizeMB int) *Service {
	if processor == nil {
		panic("ingestion: processor must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		processor:        processor,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/observations", s.IngestHandler)
}
