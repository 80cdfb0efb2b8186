// Package audio synthesizes the engine hum that follows the warp speed.
package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

const (
	maxLevel = 0.45
	slewRate = 0.0005 // amplitude change per sample
	detune   = 1.006
	overtone = 0.3
)

// Hum is an endless beep.Streamer. The speaker pulls samples on its own
// goroutine, so the speed fraction is guarded by mu.
type Hum struct {
	sampleRate beep.SampleRate
	baseFreq   float64
	peakFreq   float64

	mu       sync.RWMutex
	fraction float64

	// owned by the streaming goroutine
	level  float64
	phase  float64
	phase2 float64
}

// NewHum creates a silent hum gliding between baseFreq at rest and peakFreq at full speed.
func NewHum(sr beep.SampleRate, baseFreq, peakFreq float64) *Hum {
	return &Hum{
		sampleRate: sr,
		baseFreq:   baseFreq,
		peakFreq:   peakFreq,
	}
}

// SetSpeed sets the speed as a fraction of max speed, clamped to [0, 1].
func (h *Hum) SetSpeed(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	h.mu.Lock()
	h.fraction = fraction
	h.mu.Unlock()
}

// Speed returns the last fraction set.
func (h *Hum) Speed() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fraction
}

func (h *Hum) Stream(samples [][2]float64) (int, bool) {
	frac := h.Speed()
	freq := h.baseFreq + (h.peakFreq-h.baseFreq)*frac
	step := 2 * math.Pi * freq / float64(h.sampleRate)
	target := maxLevel * math.Sqrt(frac)

	for i := range samples {
		switch {
		case h.level < target:
			h.level = math.Min(target, h.level+slewRate)
		case h.level > target:
			h.level = math.Max(target, h.level-slewRate)
		}

		v := h.level * ((1-overtone)*math.Sin(h.phase) + overtone*math.Sin(2*h.phase2))
		samples[i][0] = v
		samples[i][1] = v

		h.phase = math.Mod(h.phase+step, 2*math.Pi)
		h.phase2 = math.Mod(h.phase2+step*detune, 2*math.Pi)
	}
	return len(samples), true
}

func (h *Hum) Err() error { return nil }
