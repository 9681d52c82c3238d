// Package metrics exposes Prometheus instruments for grading runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Rubric/internal/grader"
)

// Grade result label values.
const (
	ResultPass  = "pass"
	ResultFail  = "fail"
	ResultGated = "gated"
)

// Recorder records grading outcomes. A nil Recorder records nothing.
type Recorder struct {
	grades         *prometheus.CounterVec
	scores         prometheus.Histogram
	bucketFailures *prometheus.CounterVec
}

// NewRecorder registers the rubric instruments with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		grades: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rubric_grades_total",
			Help: "Workbooks graded, by result.",
		}, []string{"result"}),
		scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rubric_grade_score",
			Help:    "Final scores of graded workbooks.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		bucketFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rubric_bucket_failures_total",
			Help: "Scoring bucket failures, by bucket.",
		}, []string{"bucket"}),
	}
}

// Result classifies a report for the result label.
func Result(r grader.Report) string {
	switch {
	case r.Gated:
		return ResultGated
	case len(r.FailedBuckets()) > 0:
		return ResultFail
	default:
		return ResultPass
	}
}

// ObserveReport records one graded workbook.
func (m *Recorder) ObserveReport(r grader.Report) {
	if m == nil {
		return
	}
	m.grades.WithLabelValues(Result(r)).Inc()
	m.scores.Observe(r.Score)
	for _, b := range r.FailedBuckets() {
		m.bucketFailures.WithLabelValues(b).Inc()
	}
}
