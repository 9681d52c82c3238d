package hermes

const (
	SubjectGradeRequest = "rubric.grade.request"
	SubjectGradeFailed  = "rubric.grade.failed"

	// QueueGraders load-balances grade requests across rubric instances.
	QueueGraders = "rubric-graders"

	StreamName   = "RUBRIC_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectReportCompleted(reportID string) string {
	return "rubric.report." + reportID + ".completed"
}

func SubjectReportGated(reportID string) string {
	return "rubric.report." + reportID + ".gated"
}
