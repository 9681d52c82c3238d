package grader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Rubric/internal/rules"
)

// render fills ScoreLine and FeedbackLog. Line order: header, bucket summary,
// checker lines, legacy advisories, checks not met, score lines.
func render(r *Report, header []string, legacy []rules.LegacyResult) {
	var lines []string
	lines = append(lines, header...)
	lines = append(lines, bucketSummary(r)...)

	for _, o := range r.Checks {
		lines = append(lines, o.Messages()...)
	}

	var advisories []string
	for _, l := range legacy {
		advisories = append(advisories, l.Messages()...)
	}
	if len(advisories) > 0 {
		lines = append(lines, "Legacy advisories (not scored):")
		for _, a := range advisories {
			lines = append(lines, "  "+a)
		}
	}

	if len(r.ChecksNotMet) > 0 {
		lines = append(lines, "Checks not met: "+strings.Join(r.ChecksNotMet, ", "))
	}

	r.ScoreLine = fmt.Sprintf("Final score: %s / %d", oneDecimal(r.Score), int(MaxScore))
	lines = append(lines,
		fmt.Sprintf("Threshold score after deductions: %s / %d", oneDecimal(r.ThresholdScore), int(BaseTotal)),
		r.ScoreLine,
	)
	r.FeedbackLog = strings.Join(lines, "\n")
}

func bucketSummary(r *Report) []string {
	lines := []string{"Bucket summary:"}
	for _, b := range r.Buckets {
		verdict := "PASS"
		if !b.Pass {
			verdict = fmt.Sprintf("FAIL (-%d)", int(b.Deduction))
		}
		line := fmt.Sprintf("  %s: %s", b.Label, verdict)
		if len(b.Reasons) > 0 {
			line += " [" + strings.Join(b.Reasons, "; ") + "]"
		}
		lines = append(lines, line)
	}

	parts := make([]string, 0, len(r.Objectives))
	for _, o := range r.Objectives {
		verdict := "FAIL"
		if o.Pass {
			verdict = "PASS"
		}
		parts = append(parts, o.Name+" "+verdict)
	}
	lines = append(lines, fmt.Sprintf("Objectives: %s => +%s / %d", strings.Join(parts, ", "), oneDecimal(r.ObjectiveScore), int(ObjectiveTotal)))
	return lines
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
