// Package grader turns rubric check outcomes into a score and a feedback log.
package grader

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Rubric/internal/rules"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// BetaDefault is the W/WTO used when the workbook's fuel cells cannot
// provide one.
const BetaDefault = 0.87620980519917

// StealthChecker evaluates stealth shaping. Any returned line fails the
// stealth bucket.
type StealthChecker interface {
	CheckStealth(wb *workbook.Workbook) []string
}

// StealthFunc adapts a function to StealthChecker.
type StealthFunc func(wb *workbook.Workbook) []string

// CheckStealth calls f(wb).
func (f StealthFunc) CheckStealth(wb *workbook.Workbook) []string { return f(wb) }

type noStealth struct{}

func (noStealth) CheckStealth(*workbook.Workbook) []string { return nil }

// Options configures a Grader.
type Options struct {
	// LegacyAdvisories appends the older delta rule sets to the log. They
	// never change the score.
	LegacyAdvisories bool

	// Stealth defaults to a checker that reports nothing.
	Stealth StealthChecker
}

// Report is the result of grading one workbook.
type Report struct {
	Name           string            `json:"name"`
	Score          float64           `json:"score"`
	MaxScore       float64           `json:"max_score"`
	ThresholdScore float64           `json:"threshold_score"`
	ObjectiveScore float64           `json:"objective_score"`
	Gated          bool              `json:"gated"`
	ScoreLine      string            `json:"score_line"`
	FeedbackLog    string            `json:"feedback_log"`
	Buckets        []BucketResult    `json:"buckets,omitempty"`
	Objectives     []ObjectiveResult `json:"objectives,omitempty"`
	ChecksNotMet   []string          `json:"checks_not_met,omitempty"`
	Checks         []rules.Outcome   `json:"checks,omitempty"`
}

// FailedBuckets returns the names of the failing buckets.
func (r Report) FailedBuckets() []string {
	var out []string
	for _, b := range r.Buckets {
		if !b.Pass {
			out = append(out, b.Name)
		}
	}
	return out
}

// Grader scores workbooks. It holds only immutable configuration and is safe
// for concurrent use.
type Grader struct {
	opts    Options
	stealth StealthChecker
	logger  *slog.Logger
}

// NewGrader creates a Grader.
func NewGrader(opts Options, logger *slog.Logger) *Grader {
	stealth := opts.Stealth
	if stealth == nil {
		stealth = noStealth{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Grader{opts: opts, stealth: stealth, logger: logger}
}

// Grade runs every check against wb and aggregates the result. It never
// fails: missing or malformed data is reported in the feedback log.
func (g *Grader) Grade(wb *workbook.Workbook) Report {
	// SETUP
	main := wb.Sheet(workbook.SheetMain)
	name := ""
	if wb != nil {
		name = wb.Name
	}
	beta := Beta(main)

	// GEOMETRY_PREFLIGHT
	var header []string
	if name != "" {
		header = append(header, name)
	}
	if invalid := rules.InvalidCells(main); len(invalid) > 0 {
		header = append(header, fmt.Sprintf("Info: Excel errors in Main sheet at %s.", strings.Join(invalid, ", ")))
	}
	if wb.HasSheet(workbook.SheetAero) {
		header = append(header, rules.CheckAeroFormulas(wb.Sheet(workbook.SheetAero)).Messages()...)
	}

	if missing := rules.MissingGeometry(main); len(missing) > 0 {
		g.logger.Debug("geometry gate closed", "workbook", name, "missing", len(missing))
		return gatedReport(name, header, missing)
	}

	// RUN_CHECKS
	c := &checks{sheetValid: true}
	c.mission = rules.CheckMission(main, main.Float("Y37"))
	c.efficiency = rules.CheckEfficiency(main)
	c.thrust = rules.CheckThrust(wb.Sheet(workbook.SheetMiss))
	c.control = rules.CheckControlAttachment(main, wb.Sheet(workbook.SheetGeom))
	c.constraints = rules.CheckConstraints(main, wb.Sheet(workbook.SheetConsts), beta)
	c.payload = rules.CheckPayload(main)
	c.stability = rules.CheckStability(main)
	c.fuel = rules.CheckFuel(main)
	c.volume = rules.CheckVolume(main)
	c.cost = rules.CheckCost(main)
	c.gear = rules.CheckGear(wb.Sheet(workbook.SheetGear))
	c.stealth = stealthOutcome(g.stealth.CheckStealth(wb))

	// AGGREGATE
	report := Report{Name: name, MaxScore: MaxScore, Checks: c.ordered()}
	threshold := BaseTotal
	for _, def := range bucketTable {
		b := def.evaluate(c)
		report.Buckets = append(report.Buckets, b)
		threshold -= b.Deduction
		if !b.Pass {
			report.ChecksNotMet = append(report.ChecksNotMet, def.notMet)
		}
	}
	if !c.mission.Pass {
		report.ChecksNotMet = append(report.ChecksNotMet, "mission table (no deduction)")
	}
	threshold = math.Max(0, threshold)

	// BONUS
	objective := 0.0
	for _, def := range objectiveTable {
		o := def.evaluate(c)
		report.Objectives = append(report.Objectives, o)
		objective += o.Points
	}

	report.ThresholdScore = rules.RoundTenth(threshold)
	report.ObjectiveScore = rules.RoundTenth(objective)
	report.Score = rules.RoundTenth(math.Min(MaxScore, math.Max(0, report.ThresholdScore+report.ObjectiveScore)))

	// RENDER
	var legacy []rules.LegacyResult
	if g.opts.LegacyAdvisories {
		legacy = []rules.LegacyResult{
			rules.LegacyMission(main),
			rules.LegacyGear(wb.Sheet(workbook.SheetGear)),
		}
	}
	render(&report, header, legacy)

	g.logger.Debug("workbook graded",
		"workbook", name,
		"score", report.Score,
		"failed_buckets", report.FailedBuckets(),
	)
	return report
}

// Beta derives the expected mid-mission weight fraction from the main
// sheet: 1 - O18/(2*O15), falling back to BetaDefault.
func Beta(main workbook.Sheet) float64 {
	available := main.Float("O18")
	capacity := main.Float("O15")
	if workbook.Finite(available) && workbook.Finite(capacity) && capacity != 0 {
		return 1 - available/(2*capacity)
	}
	return BetaDefault
}

func stealthOutcome(lines []string) rules.Outcome {
	o := rules.Outcome{Name: "stealth", Pass: len(lines) == 0, Failures: len(lines)}
	for _, l := range lines {
		o.Lines = append(o.Lines, rules.Line{Text: l})
	}
	return o
}

func gatedReport(name string, header, missing []string) Report {
	msg := fmt.Sprintf("Sheet validation: Geometry inputs must be numeric (missing at %s).", strings.Join(missing, ", "))
	lines := []string{msg}
	if len(header) > 0 {
		lines = []string{header[0], msg}
	}
	return Report{
		Name:        name,
		MaxScore:    MaxScore,
		Gated:       true,
		ScoreLine:   msg,
		FeedbackLog: strings.Join(lines, "\n"),
	}
}
