package grader

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/rules"
)

// Score budget.
const (
	BaseTotal       = 85.0
	ObjectiveTotal  = 15.0
	MaxScore        = 100.0
	BucketDeduction = 5.0
	ObjectivePoints = 5.0
)

// checks holds every checker result of one grading run.
type checks struct {
	mission     rules.MissionResult
	efficiency  rules.Outcome
	thrust      rules.Outcome
	control     rules.Outcome
	constraints rules.Outcome
	payload     rules.PayloadResult
	stability   rules.Outcome
	fuel        rules.Outcome
	volume      rules.Outcome
	cost        rules.CostResult
	gear        rules.Outcome
	stealth     rules.Outcome

	// sheetValid is false when geometry inputs are missing. Such runs stop at
	// the gate, so every bucket evaluation sees true.
	sheetValid bool
}

// ordered returns the outcomes in invocation order.
func (c *checks) ordered() []rules.Outcome {
	return []rules.Outcome{
		c.mission.Outcome,
		c.efficiency,
		c.thrust,
		c.control,
		c.constraints,
		c.payload.Outcome,
		c.stability,
		c.fuel,
		c.volume,
		c.cost.Outcome,
		c.gear,
		c.stealth,
	}
}

type member struct {
	reason string
	pass   func(c *checks) bool
}

type bucketDef struct {
	name    string
	title   string
	notMet  string
	members []member
	// detail replaces the member reasons in the summary when set.
	detail func(c *checks) []string
}

var bucketTable = []bucketDef{
	{
		name:   "constraints",
		title:  "Constraints",
		notMet: "constraints/payload/efficiency/Tavail/sheet validity",
		members: []member{
			{"constraint table/curves", func(c *checks) bool { return c.constraints.Pass }},
			{"payload", func(c *checks) bool { return c.payload.Pass }},
			{"efficiency guards", func(c *checks) bool { return c.efficiency.Pass }},
			{"Tavail>Drag", func(c *checks) bool { return c.thrust.Pass }},
			{"sheet validation", func(c *checks) bool { return c.sheetValid }},
		},
	},
	{
		name:    "range",
		title:   "Range",
		notMet:  "range",
		members: []member{{"", func(c *checks) bool { return c.mission.RangePass }}},
	},
	{
		name:   "geometry",
		title:  "Geometry",
		notMet: "geometry (controls/stability)",
		members: []member{
			{"controls", func(c *checks) bool { return c.control.Pass }},
			{"stability", func(c *checks) bool { return c.stability.Pass }},
		},
	},
	{
		name:    "gear",
		title:   "Gear",
		notMet:  "landing gear",
		members: []member{{"", func(c *checks) bool { return c.gear.Pass }}},
		detail: func(c *checks) []string {
			return []string{fmt.Sprintf("%d issue(s)", c.gear.Failures)}
		},
	},
	{
		name:    "fuel",
		title:   "Fuel",
		notMet:  "fuel",
		members: []member{{"", func(c *checks) bool { return c.fuel.Pass }}},
	},
	{
		name:    "volume",
		title:   "Volume",
		notMet:  "volume remaining",
		members: []member{{"", func(c *checks) bool { return c.volume.Pass }}},
	},
	{
		name:    "stealth",
		title:   "Stealth",
		notMet:  "stealth shaping",
		members: []member{{"", func(c *checks) bool { return c.stealth.Pass }}},
	},
}

// BucketResult is the verdict on one scoring bucket.
type BucketResult struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Pass      bool     `json:"pass"`
	Deduction float64  `json:"deduction"`
	Reasons   []string `json:"reasons,omitempty"`
}

func (b bucketDef) evaluate(c *checks) BucketResult {
	res := BucketResult{Name: b.name, Label: b.title, Pass: true}
	for _, m := range b.members {
		if m.pass(c) {
			continue
		}
		res.Pass = false
		if m.reason != "" {
			res.Reasons = append(res.Reasons, m.reason)
		}
	}
	if !res.Pass {
		res.Deduction = BucketDeduction
		if b.detail != nil {
			res.Reasons = b.detail(c)
		}
	}
	return res
}

type objectiveDef struct {
	name string
	pass func(c *checks) bool
}

var objectiveTable = []objectiveDef{
	{"Range", func(c *checks) bool { return c.mission.RangeObjectivePass }},
	{"Cost", func(c *checks) bool { return c.cost.ObjectivePass }},
	{"Payload", func(c *checks) bool { return c.payload.ObjectivePass }},
}

// ObjectiveResult is the verdict on one objective bonus.
type ObjectiveResult struct {
	Name   string  `json:"name"`
	Pass   bool    `json:"pass"`
	Points float64 `json:"points"`
}

func (o objectiveDef) evaluate(c *checks) ObjectiveResult {
	res := ObjectiveResult{Name: o.name, Pass: o.pass(c)}
	if res.Pass {
		res.Points = ObjectivePoints
	}
	return res
}
