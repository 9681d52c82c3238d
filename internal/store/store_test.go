package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Rubric/internal/grader"
)

func sampleReport(name string, score float64, gated bool) grader.Report {
	r := grader.Report{
		Name:           name,
		Score:          score,
		MaxScore:       grader.MaxScore,
		ThresholdScore: score,
		Gated:          gated,
	}
	if !gated {
		r.Buckets = []grader.BucketResult{
			{Name: "constraints", Label: "Constraints", Pass: true},
			{Name: "fuel", Label: "Fuel", Pass: false, Deduction: grader.BucketDeduction},
		}
	}
	return r
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("api", sampleReport("a.xlsx", 80, false))
	if rec.Name != "a.xlsx" || rec.Source != "api" {
		t.Errorf("unexpected identity %q/%q", rec.Name, rec.Source)
	}
	if rec.Score != 80 || rec.Gated {
		t.Errorf("unexpected summary %+v", rec)
	}
	if len(rec.FailedBuckets) != 1 || rec.FailedBuckets[0] != "fuel" {
		t.Errorf("expected [fuel], got %v", rec.FailedBuckets)
	}

	gated := NewRecord("cli", sampleReport("b.xlsx", 0, true))
	if gated.FailedBuckets == nil || len(gated.FailedBuckets) != 0 {
		t.Errorf("expected empty non-nil failed buckets, got %#v", gated.FailedBuckets)
	}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := NewRecord("api", sampleReport("a.xlsx", 95, false))
	if err := s.SaveReport(ctx, rec); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("expected report ID after save")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetReport(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.Report.Name != "a.xlsx" || got.Score != 95 {
		t.Errorf("unexpected record %+v", got)
	}

	// Returned records are copies.
	got.Name = "changed"
	again, _ := s.GetReport(ctx, rec.ID)
	if again.Name != "a.xlsx" {
		t.Error("mutating a returned record changed the archive")
	}

	_, err = s.GetReport(ctx, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, r := range []struct {
		name   string
		source string
		gated  bool
	}{
		{"one.xlsx", "cli", false},
		{"two.xlsx", "api", true},
		{"three.xlsx", "api", false},
		{"four.xlsx", "nats", false},
	} {
		if err := s.SaveReport(ctx, NewRecord(r.source, sampleReport(r.name, 85, r.gated))); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListReports(ctx, ReportFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[0].Name != "four.xlsx" || all[3].Name != "one.xlsx" {
		t.Errorf("expected newest first, got %v", names(all))
	}

	api, _ := s.ListReports(ctx, ReportFilter{Source: "api"})
	if len(api) != 2 {
		t.Errorf("expected 2 api reports, got %v", names(api))
	}

	gated := true
	g, _ := s.ListReports(ctx, ReportFilter{Gated: &gated})
	if len(g) != 1 || g[0].Name != "two.xlsx" {
		t.Errorf("expected only two.xlsx, got %v", names(g))
	}

	byName, _ := s.ListReports(ctx, ReportFilter{Name: "three.xlsx"})
	if len(byName) != 1 {
		t.Errorf("expected one match by name, got %v", names(byName))
	}

	page, _ := s.ListReports(ctx, ReportFilter{Limit: 2, Offset: 1})
	if len(page) != 2 || page[0].Name != "three.xlsx" || page[1].Name != "two.xlsx" {
		t.Errorf("unexpected page %v", names(page))
	}

	past, _ := s.ListReports(ctx, ReportFilter{Offset: 10})
	if len(past) != 0 {
		t.Errorf("expected empty page, got %v", names(past))
	}
}

func TestReportFilterDefaults(t *testing.T) {
	f := ReportFilter{}
	if f.limit() != defaultListLimit {
		t.Errorf("expected default limit %d, got %d", defaultListLimit, f.limit())
	}
	if f.Gated != nil {
		t.Error("expected nil gated filter")
	}
}

func names(recs []*ReportRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}
