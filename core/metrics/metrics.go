package metrics

import "time"

// StageEvent describes one completed generation stage.
type StageEvent struct {
	Stage    string
	Duration time.Duration
	// Attempts counts samples drawn by rejection loops, zero for stages
	// without one.
	Attempts int
	// Fallbacks counts records that needed a corrective policy (swapped play
	// bounds, clamped windows, floored budgets).
	Fallbacks int
}

// GenerationEvent summarizes a finished instance.
type GenerationEvent struct {
	RunID       string
	Name        string
	Seed        int64
	Breaks      int
	Commercials int
	Competitors int
	Duration    time.Duration
	Time        time.Time
}

// FailureEvent records a run aborted by a stage.
type FailureEvent struct {
	Stage string
	Err   error
}

// ConversionEvent records a solver conversion.
type ConversionEvent struct {
	RunID string
	Scale int
	Time  time.Time
}

// GenerationRecorder receives generation metrics.
type GenerationRecorder interface {
	RecordStage(ev StageEvent) error
	RecordGeneration(ev GenerationEvent) error
	RecordFailure(ev FailureEvent) error
}

// ConversionRecorder receives conversion metrics.
type ConversionRecorder interface {
	RecordConversion(ev ConversionEvent) error
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) RecordStage(StageEvent) error           { return nil }
func (NopRecorder) RecordGeneration(GenerationEvent) error { return nil }
func (NopRecorder) RecordFailure(FailureEvent) error       { return nil }
func (NopRecorder) RecordConversion(ConversionEvent) error { return nil }
