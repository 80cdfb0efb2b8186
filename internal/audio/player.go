package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const scopeRing = 4096

// Player routes a Hum to the speaker: hum -> tap -> volume -> ctrl.
type Player struct {
	hum  *Hum
	tap  *Tap
	ctrl *beep.Ctrl
}

// Start initializes the speaker and begins playing the hum.
func Start(sampleRate int, baseFreq, peakFreq, volume float64) (*Player, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	hum := NewHum(sr, baseFreq, peakFreq)
	tap := NewTap(hum, scopeRing)
	vol := &effects.Volume{Streamer: tap, Base: 2, Volume: volume}
	ctrl := &beep.Ctrl{Streamer: vol}
	speaker.Play(ctrl)

	return &Player{hum: hum, tap: tap, ctrl: ctrl}, nil
}

// SetSpeed forwards the speed fraction to the hum. Safe on a nil player.
func (p *Player) SetSpeed(fraction float64) {
	if p == nil {
		return
	}
	p.hum.SetSpeed(fraction)
}

// Scope appends the last n played samples to dst. Returns dst unchanged on a nil player.
func (p *Player) Scope(dst []float64, n int) []float64 {
	if p == nil {
		return dst
	}
	return p.tap.Snapshot(dst, n)
}

// ToggleMute pauses or resumes the hum and reports whether it is now muted.
func (p *Player) ToggleMute() bool {
	if p == nil {
		return true
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	muted := p.ctrl.Paused
	speaker.Unlock()
	return muted
}

// Stop clears the speaker.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}
