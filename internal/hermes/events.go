package hermes

import "encoding/json"

// GradeRequestEvent asks a rubric instance to grade one workbook. Workbook
// holds the JSON workbook document (role -> rows of cells).
type GradeRequestEvent struct {
	Name     string          `json:"name"`
	Source   string          `json:"source,omitempty"`
	Workbook json.RawMessage `json:"workbook"`
}

type ReportCompletedEvent struct {
	ReportID       string   `json:"report_id"`
	Name           string   `json:"name"`
	Source         string   `json:"source,omitempty"`
	Score          float64  `json:"score"`
	ThresholdScore float64  `json:"threshold_score"`
	ObjectiveScore float64  `json:"objective_score"`
	FailedBuckets  []string `json:"failed_buckets"`
	ScoreLine      string   `json:"score_line"`
}

type ReportGatedEvent struct {
	ReportID  string `json:"report_id"`
	Name      string `json:"name"`
	Source    string `json:"source,omitempty"`
	ScoreLine string `json:"score_line"`
}

type GradeFailedEvent struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error"`
}
