package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Rubric/internal/grader"
)

// ErrNotFound is returned when a report ID is not in the archive.
var ErrNotFound = errors.New("store: report not found")

// ReportRecord is one archived grading run.
type ReportRecord struct {
	ID     uuid.UUID `json:"report_id"`
	Name   string    `json:"name"`
	Source string    `json:"source"`

	Score          float64  `json:"score"`
	ThresholdScore float64  `json:"threshold_score"`
	ObjectiveScore float64  `json:"objective_score"`
	Gated          bool     `json:"gated"`
	FailedBuckets  []string `json:"failed_buckets"`

	Report grader.Report `json:"report"`

	CreatedAt time.Time `json:"created_at"`
}

// NewRecord fills the summary columns of a record from a report.
func NewRecord(source string, r grader.Report) *ReportRecord {
	failed := r.FailedBuckets()
	if failed == nil {
		failed = []string{}
	}
	return &ReportRecord{
		Name:           r.Name,
		Source:         source,
		Score:          r.Score,
		ThresholdScore: r.ThresholdScore,
		ObjectiveScore: r.ObjectiveScore,
		Gated:          r.Gated,
		FailedBuckets:  failed,
		Report:         r,
	}
}

type ReportFilter struct {
	Name   string
	Source string
	Gated  *bool
	Limit  int
	Offset int
}

const defaultListLimit = 100

func (f ReportFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Store archives grading reports. Archived reports are never read back by a
// grading run.
type Store interface {
	SaveReport(ctx context.Context, rec *ReportRecord) error
	GetReport(ctx context.Context, id uuid.UUID) (*ReportRecord, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]*ReportRecord, error)
	Close() error
}
