package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MikeSquared-Agency/Rubric/internal/config"
	"github.com/MikeSquared-Agency/Rubric/internal/grader"
	"github.com/MikeSquared-Agency/Rubric/internal/hermes"
	"github.com/MikeSquared-Agency/Rubric/internal/metrics"
	"github.com/MikeSquared-Agency/Rubric/internal/store"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// Sources recorded on archived reports.
const (
	SourceAPI  = "api"
	SourceCLI  = "cli"
	SourceNATS = "nats"
)

// Broker runs workbooks through the grader and fans the result out to
// metrics, the report archive and hermes. Store, hermes and metrics are all
// optional.
type Broker struct {
	grader  *grader.Grader
	store   store.Store
	hermes  hermes.Client
	metrics *metrics.Recorder
	names   workbook.SheetNames
	logger  *slog.Logger

	sem chan struct{}

	mu       sync.Mutex
	stopped  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(g *grader.Grader, s store.Store, h hermes.Client, m *metrics.Recorder, cfg *config.Config, logger *slog.Logger) *Broker {
	workers := cfg.Grading.Workers
	if workers < 1 {
		workers = 1
	}
	return &Broker{
		grader:  g,
		store:   s,
		hermes:  h,
		metrics: m,
		names:   cfg.SheetNames(),
		logger:  logger,
		sem:     make(chan struct{}, workers),
		stopCh:  make(chan struct{}),
	}
}

// SheetNames is the tab mapping used to read uploaded workbooks.
func (b *Broker) SheetNames() workbook.SheetNames { return b.names }

// Submit grades wb and archives the report. The returned record carries the
// archive ID when a store is configured. A failed archive write is returned
// as an error together with the record.
func (b *Broker) Submit(ctx context.Context, source string, wb *workbook.Workbook) (*store.ReportRecord, error) {
	report := b.grader.Grade(wb)
	b.metrics.ObserveReport(report)

	rec := store.NewRecord(source, report)
	if b.store != nil {
		if err := b.store.SaveReport(ctx, rec); err != nil {
			return rec, fmt.Errorf("archive report: %w", err)
		}
	}

	b.logger.Info("workbook graded",
		"report_id", rec.ID,
		"name", rec.Name,
		"source", source,
		"score", rec.Score,
		"gated", rec.Gated,
		"failed_buckets", rec.FailedBuckets,
	)
	b.publishReport(rec)
	return rec, nil
}

func (b *Broker) publishReport(rec *store.ReportRecord) {
	if b.hermes == nil {
		return
	}
	id := rec.ID.String()
	var err error
	if rec.Gated {
		err = b.hermes.Publish(hermes.SubjectReportGated(id), hermes.ReportGatedEvent{
			ReportID:  id,
			Name:      rec.Name,
			Source:    rec.Source,
			ScoreLine: rec.Report.ScoreLine,
		})
	} else {
		err = b.hermes.Publish(hermes.SubjectReportCompleted(id), hermes.ReportCompletedEvent{
			ReportID:       id,
			Name:           rec.Name,
			Source:         rec.Source,
			Score:          rec.Score,
			ThresholdScore: rec.ThresholdScore,
			ObjectiveScore: rec.ObjectiveScore,
			FailedBuckets:  rec.FailedBuckets,
			ScoreLine:      rec.Report.ScoreLine,
		})
	}
	if err != nil {
		b.logger.Warn("failed to publish report event", "report_id", id, "error", err)
	}
}
