// Package telemetry records speed samples to CSV for offline inspection.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/iburimskiy/warpfield/internal/config"
)

// SpeedSample is one row of speed.csv.
type SpeedSample struct {
	Tick       int     `csv:"tick"`
	Target     float64 `csv:"target"`
	Current    float64 `csv:"current"`
	Fraction   float64 `csv:"fraction"`
	Recycled   int     `csv:"recycled"`
	ActiveBars int     `csv:"active_bars"`
}

// Summary aggregates samples over a run.
type Summary struct {
	Ticks     int
	Recycled  int
	PeakSpeed float64
}

// Add folds one sample into the summary.
func (s *Summary) Add(sample SpeedSample) {
	s.Ticks++
	s.Recycled += sample.Recycled
	if sample.Current > s.PeakSpeed {
		s.PeakSpeed = sample.Current
	}
}

// Recorder writes every interval-th sample to speed.csv.
// A nil Recorder discards everything.
type Recorder struct {
	dir           string
	file          *os.File
	interval      int
	headerWritten bool
}

// NewRecorder creates the output directory and speed.csv.
// Returns nil if dir is empty (output disabled).
func NewRecorder(dir string, interval int) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if interval < 1 {
		interval = 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "speed.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating speed.csv: %w", err)
	}
	return &Recorder{dir: dir, file: f, interval: interval}, nil
}

// Dir returns the output directory.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Observe writes the sample if its tick falls on the sampling interval.
func (r *Recorder) Observe(s SpeedSample) error {
	if r == nil || r.file == nil || s.Tick%r.interval != 0 {
		return nil
	}

	records := []SpeedSample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing speed sample: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("writing speed sample: %w", err)
	}
	return nil
}

// WriteConfig saves the running configuration next to the samples.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Close flushes and closes speed.csv. Later calls are no-ops.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
