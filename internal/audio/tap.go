package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through unchanged while keeping the most recent mono
// samples in a ring so the gauge can draw a scope of what is playing.
type Tap struct {
	Source beep.Streamer

	mu   sync.RWMutex
	ring []float64
	next int
}

// NewTap wraps src with a ring of size samples.
func NewTap(src beep.Streamer, size int) *Tap {
	return &Tap{Source: src, ring: make([]float64, size)}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = (samples[i][0] + samples[i][1]) / 2
			t.next = (t.next + 1) % len(t.ring)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot appends the last n samples, oldest first, to dst.
func (t *Tap) Snapshot(dst []float64, n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.ring) {
		n = len(t.ring)
	}
	start := t.next - n
	if start < 0 {
		start += len(t.ring)
	}
	for i := 0; i < n; i++ {
		dst = append(dst, t.ring[(start+i)%len(t.ring)])
	}
	return dst
}
