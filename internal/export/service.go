package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-composer/internal/metrics"
	"github.com/jonathan/resume-composer/internal/pipeline"
	"github.com/jonathan/resume-composer/internal/rendering"
)

// Mode selects how pages become a PDF
type Mode string

// Export modes
const (
	ModeVector Mode = "vector"
	ModeRaster Mode = "raster"
)

// ParseMode parses a mode name; blank means vector.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeVector:
		return ModeVector, nil
	case ModeRaster:
		return ModeRaster, nil
	default:
		return "", fmt.Errorf("unknown export mode %q (want %s or %s)", s, ModeVector, ModeRaster)
	}
}

type job struct {
	id     string
	cancel context.CancelCauseFunc
}

// Service runs exports with at most one in flight per key. Starting an
// export for a key that already has one running cancels the older export.
type Service struct {
	exporters map[Mode]rendering.Exporter
	logger    *slog.Logger

	mu     sync.Mutex
	active map[string]*job
}

// NewService creates a service with the vector and raster exporters.
func NewService(logger *slog.Logger) *Service {
	return NewServiceWithExporters(logger, map[Mode]rendering.Exporter{
		ModeVector: rendering.NewPDFExporter(),
		ModeRaster: rendering.NewBrowserExporter(),
	})
}

// NewServiceWithExporters creates a service over the given exporters.
func NewServiceWithExporters(logger *slog.Logger, exporters map[Mode]rendering.Exporter) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	m := make(map[Mode]rendering.Exporter, len(exporters))
	for mode, e := range exporters {
		m[mode] = e
	}
	return &Service{
		exporters: m,
		logger:    logger,
		active:    make(map[string]*job),
	}
}

// InFlight returns the number of running exports.
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *Service) start(ctx context.Context, key string) (context.Context, *job) {
	jobCtx, cancel := context.WithCancelCause(ctx)
	j := &job{id: uuid.NewString(), cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.active[key]; ok {
		prev.cancel(ErrSuperseded)
		s.logger.Info("export superseded",
			slog.String("key", key),
			slog.String("job_id", prev.id),
			slog.String("superseded_by", j.id))
	}
	s.active[key] = j
	s.mu.Unlock()
	return jobCtx, j
}

func (s *Service) finish(key string, j *job) {
	s.mu.Lock()
	if s.active[key] == j {
		delete(s.active, key)
	}
	s.mu.Unlock()
	j.cancel(nil)
}

// Export produces a document for the composition. key identifies the
// resume; an empty key never supersedes anything. On failure, cancellation
// or supersession it returns an *rendering.ExportError and no document.
func (s *Service) Export(ctx context.Context, key string, c *pipeline.Composition, mode Mode) (*rendering.Document, error) {
	exporter, ok := s.exporters[mode]
	if !ok {
		return nil, &rendering.ExportError{Message: fmt.Sprintf("no exporter for mode %q", mode)}
	}
	if key == "" {
		key = uuid.NewString()
	}

	jobCtx, j := s.start(ctx, key)
	defer s.finish(key, j)

	log := s.logger.With(
		slog.String("job_id", j.id),
		slog.String("key", key),
		slog.String("mode", string(mode)),
	)
	if c != nil {
		log = log.With(slog.String("template", c.TemplateID), slog.Int("pages", len(c.Pages)))
	}
	log.Info("export started")

	done := metrics.ExportStarted(string(mode))
	start := time.Now()
	doc, err := pipeline.Export(jobCtx, c, exporter)
	if err != nil {
		if cause := context.Cause(jobCtx); errors.Is(cause, ErrSuperseded) {
			err = &rendering.ExportError{Message: "export canceled", Cause: cause}
		}
		if pipeline.IsCanceled(err) || errors.Is(err, ErrSuperseded) {
			done(metrics.OutcomeCanceled)
			log.Warn("export canceled", slog.Any("error", err))
		} else {
			done(metrics.OutcomeFailed)
			log.Error("export failed", slog.Any("error", err))
		}
		return nil, err
	}

	done(metrics.OutcomeSuccess)
	log.Info("export finished",
		slog.String("file_name", doc.FileName),
		slog.Int("bytes", len(doc.Data)),
		slog.Duration("elapsed", time.Since(start)))
	return doc, nil
}
