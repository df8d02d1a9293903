package ingestion

import (
	"context"

	v1 "github.com/aevon-lab/hybrid-events/internal/api/v1"
	"github.com/aevon-lab/hybrid-events/internal/bus"
	"github.com/aevon-lab/hybrid-events/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// SourceLoader resolves an import path to a batch of events.
type SourceLoader interface {
	Load(ctx context.Context, path string) ([]*v1.Event, error)
}

// Options tunes request handling.
type Options struct {
	MaxBodySizeMB int

	// Debug adds the Go error type to 500 responses.
	Debug bool

	// Subject is where inserted events are announced. Defaults to bus.DefaultSubject.
	Subject string
}

type Service struct {
	repo             storage.EventRepository
	loader           SourceLoader
	publisher        bus.Publisher
	subject          string
	maxBodySizeBytes int
	debug            bool
}

func NewService(repo storage.EventRepository, loader SourceLoader, publisher bus.Publisher, opts Options) *Service {
	if repo == nil {
		panic("ingestion: repository must not be nil")
	}
	if loader == nil {
		panic("ingestion: source loader must not be nil")
	}
	if publisher == nil {
		publisher = &bus.NoopPublisher{}
	}
	if opts.MaxBodySizeMB <= 0 {
		opts.MaxBodySizeMB = 1 // default to 1MB
	}
	if opts.Subject == "" {
		opts.Subject = bus.DefaultSubject
	}
	return &Service{
		repo:             repo,
		loader:           loader,
		publisher:        publisher,
		subject:          opts.Subject,
		maxBodySizeBytes: opts.MaxBodySizeMB * 1024 * 1024,
		debug:            opts.Debug,
	}
}

// RegisterRoutes registers the event API routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/events", s.ListEventsHandler)
	r.GET("/events/by-id/:id", s.GetByBusinessIDHandler)
	r.GET("/events/by-store-id/:storeId", s.GetByStoreIDHandler)
	r.GET("/events/by-event-ts", s.GetByTimestampHandler)

	r.POST("/events", s.InsertHandler)
	r.POST("/events/batch", s.InsertBatchHandler)
	r.POST("/events/import-file", s.ImportFileHandler)
}
