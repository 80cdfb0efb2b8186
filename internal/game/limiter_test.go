package game

import (
	"testing"
	"time"
)

func TestLimiterSkipsShortFrames(t *testing.T) {
	l := NewLimiter(60)

	if l.Ready(10 * time.Millisecond) {
		t.Error("expected no tick before one interval has passed")
	}
	if !l.Ready(20 * time.Millisecond) {
		t.Error("expected tick after one interval")
	}
	if l.Ready(30 * time.Millisecond) {
		t.Error("expected no tick 10ms after previous tick")
	}
	if !l.Ready(34 * time.Millisecond) {
		t.Error("expected tick once the carried remainder plus elapsed exceeds the interval")
	}
}

func TestLimiterCarriesRemainder(t *testing.T) {
	l := NewLimiter(60)

	l.Ready(20 * time.Millisecond)

	// 20ms - (20ms mod 16.67ms) lands on the first interval boundary.
	if l.last != l.interval {
		t.Errorf("expected last tick at %v, got %v", l.interval, l.last)
	}
}

func TestLimiterRateAtHighRefresh(t *testing.T) {
	tests := []struct {
		name  string
		frame time.Duration
	}{
		{"1000hz", time.Millisecond},
		{"144hz", time.Second / 144},
		{"240hz", time.Second / 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLimiter(60)
			ticks := 0
			for now := tt.frame; now <= 10*time.Second; now += tt.frame {
				if l.Ready(now) {
					ticks++
				}
			}
			if ticks < 590 || ticks > 600 {
				t.Errorf("expected about 600 ticks in 10s, got %d", ticks)
			}
		})
	}
}

func TestLimiterDefaultsRate(t *testing.T) {
	if got := NewLimiter(0).Interval(); got != time.Second/60 {
		t.Errorf("expected 60 tps default, got interval %v", got)
	}
}
