package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iburimskiy/warpfield/internal/config"
)

func TestNilRecorderDisabled(t *testing.T) {
	r, err := NewRecorder("", 10)
	if err != nil || r != nil {
		t.Fatalf("expected nil recorder, got %v, %v", r, err)
	}
	if err := r.Observe(SpeedSample{Tick: 10}); err != nil {
		t.Errorf("Observe on nil recorder: %v", err)
	}
	if err := r.WriteConfig(nil); err != nil {
		t.Errorf("WriteConfig on nil recorder: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil recorder: %v", err)
	}
}

func TestRecorderWritesIntervalSamples(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir, 2)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	for tick := 1; tick <= 6; tick++ {
		s := SpeedSample{Tick: tick, Target: 25, Current: float64(tick), Fraction: float64(tick) / 50}
		if err := r.Observe(s); err != nil {
			t.Fatalf("Observe: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "speed.csv"))
	if err != nil {
		t.Fatalf("reading speed.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), data)
	}
	if lines[0] != "tick,target,current,fraction,recycled,active_bars" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2,") || !strings.HasPrefix(lines[3], "6,") {
		t.Errorf("expected ticks 2,4,6, got %v", lines[1:])
	}
}

func TestRecorderCloseTwice(t *testing.T) {
	r, err := NewRecorder(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := r.Observe(SpeedSample{Tick: 1}); err != nil {
		t.Errorf("Observe after Close: %v", err)
	}
}

func TestRecorderWritesConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(dir, 1)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer r.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("snapshot does not load back: %v", err)
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(SpeedSample{Current: 3, Recycled: 5})
	s.Add(SpeedSample{Current: 9, Recycled: 1})
	s.Add(SpeedSample{Current: 4})

	if s.Ticks != 3 || s.Recycled != 6 || s.PeakSpeed != 9 {
		t.Errorf("unexpected summary %+v", s)
	}
}
