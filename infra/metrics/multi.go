package metrics

import coremetrics "github.com/adbreak/breakgen/core/metrics"

// Recorder receives every event kind.
type Recorder interface {
	coremetrics.GenerationRecorder
	coremetrics.ConversionRecorder
}

// MultiRecorder fans events out to several recorders.
type MultiRecorder struct {
	Recorders []Recorder
}

// NewMultiRecorder creates a MultiRecorder with the provided recorders.
func NewMultiRecorder(recs ...Recorder) *MultiRecorder {
	return &MultiRecorder{Recorders: recs}
}

// RecordStage forwards the event to all recorders, returning the first error encountered.
func (m *MultiRecorder) RecordStage(ev coremetrics.StageEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordStage(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordGeneration forwards generation summaries.
func (m *MultiRecorder) RecordGeneration(ev coremetrics.GenerationEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordGeneration(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFailure forwards aborted runs.
func (m *MultiRecorder) RecordFailure(ev coremetrics.FailureEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordFailure(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordConversion forwards conversions.
func (m *MultiRecorder) RecordConversion(ev coremetrics.ConversionEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordConversion(ev); err != nil {
			return err
		}
	}
	return nil
}
