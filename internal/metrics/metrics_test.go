package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Rubric/internal/grader"
)

func report(score float64, gated bool, failed ...string) grader.Report {
	r := grader.Report{Score: score, Gated: gated}
	for _, name := range failed {
		r.Buckets = append(r.Buckets, grader.BucketResult{Name: name, Deduction: grader.BucketDeduction})
	}
	r.Buckets = append(r.Buckets, grader.BucketResult{Name: "stealth", Pass: true})
	return r
}

// gathered flattens counter and histogram samples keyed by metric name and
// first label value.
func gathered(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				key += "/" + labels[0].GetValue()
			}
			if c := m.GetCounter(); c != nil {
				out[key] = c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				out[key+"/count"] = float64(h.GetSampleCount())
				out[key+"/sum"] = h.GetSampleSum()
			}
		}
	}
	return out
}

func TestResult(t *testing.T) {
	assert.Equal(t, ResultGated, Result(report(0, true)))
	assert.Equal(t, ResultFail, Result(report(80, false, "fuel")))
	assert.Equal(t, ResultPass, Result(report(100, false)))
}

func TestObserveReport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRecorder(reg)

	m.ObserveReport(report(100, false))
	m.ObserveReport(report(75, false, "fuel", "gear"))
	m.ObserveReport(report(80, false, "fuel"))
	m.ObserveReport(report(0, true))

	got := gathered(t, reg)
	assert.Equal(t, 1.0, got["rubric_grades_total/pass"])
	assert.Equal(t, 2.0, got["rubric_grades_total/fail"])
	assert.Equal(t, 1.0, got["rubric_grades_total/gated"])
	assert.Equal(t, 2.0, got["rubric_bucket_failures_total/fuel"])
	assert.Equal(t, 1.0, got["rubric_bucket_failures_total/gear"])
	assert.NotContains(t, got, "rubric_bucket_failures_total/stealth")
	assert.Equal(t, 4.0, got["rubric_grade_score/count"])
	assert.Equal(t, 255.0, got["rubric_grade_score/sum"])
}

func TestNilRecorder(t *testing.T) {
	var m *Recorder
	assert.NotPanics(t, func() { m.ObserveReport(report(50, false, "range")) })
}
