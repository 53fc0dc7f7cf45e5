package model

import "time"

// PlayRange holds the minimum and maximum number of plays of a commercial.
type PlayRange struct {
	Max int `json:"max"`
	Min int `json:"min"`
}

// TickSpan is a break expressed in ticks from the horizon start.
type TickSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SolverInstance is the quantized form of a ProblemInstance. Timestamps are
// tick offsets from the horizon start and values are rescaled to solver
// units. It is write-once output.
type SolverInstance struct {
	RunID        string    `json:"run_id"`
	InstanceName string    `json:"instance_name"`
	Seed         int64     `json:"seed"`
	GeneratedAt  time.Time `json:"generated_at"`

	Scale                int              `json:"scale"`
	StartPlanningHorizon Timestamp        `json:"start_planning_horizon"`
	EndPlanningHorizon   Timestamp        `json:"end_planning_horizon"`
	Breaks               int              `json:"breaks"`
	BreakDuration        []int            `json:"break_duration"`
	BreakLength          []TickSpan       `json:"break_length"`
	Commercials          int              `json:"commercials"`
	Name                 []string         `json:"name"`
	CommercialDuration   []int            `json:"commercial_duration"`
	CommercialCopy       []PlayRange      `json:"commercial_copy"`
	Penalty              []float64        `json:"penalty"`
	Competitors          []CompetitorPair `json:"competitors"`
	ReleaseTime          []int            `json:"release_time"`
	DueTime              []int            `json:"due_time"`
	Price                [][]float64      `json:"price"`
	Reach                [][]float64      `json:"reach"`
	Budget               []float64        `json:"budget"`
	RequiredReach        []float64        `json:"required_reach"`
}
