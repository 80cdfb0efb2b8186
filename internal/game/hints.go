package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	desktopHint = "W/S or Up/Down: speed  |  drag gauge  |  wheel  |  Space: cruise/stop  |  Tab: next preset"
	touchHint   = "Drag the gauge up or down  |  tap it to stop"
)

// Hints shows usage help until a short while after the first input.
type Hints struct {
	delay   time.Duration
	touch   bool
	hideAt  time.Duration
	pending bool
	hidden  bool
}

// NewHints creates visible hints that hide delay after the first input.
func NewHints(delay time.Duration) *Hints {
	return &Hints{delay: delay}
}

// Touch switches to the touch wording.
func (h *Hints) Touch() { h.touch = true }

// Input schedules the hints to hide. Later inputs do not postpone it.
func (h *Hints) Input(now time.Duration) {
	if h.pending || h.hidden {
		return
	}
	h.pending = true
	h.hideAt = now + h.delay
}

// Update hides the hints for good once the scheduled time passes.
func (h *Hints) Update(now time.Duration) {
	if h.pending && now >= h.hideAt {
		h.pending = false
		h.hidden = true
	}
}

// Visible reports whether the hints show at now.
func (h *Hints) Visible(now time.Duration) bool {
	if h.hidden {
		return false
	}
	return !h.pending || now < h.hideAt
}

// Text returns the wording for the current device.
func (h *Hints) Text() string {
	if h.touch {
		return touchHint
	}
	return desktopHint
}

func (h *Hints) Draw(dst *ebiten.Image, now time.Duration) {
	if !h.Visible(now) {
		return
	}
	text := h.Text()
	b := dst.Bounds()
	// DebugPrint glyphs are 6px wide
	x := (b.Dx() - len(text)*6) / 2
	if x < 0 {
		x = 0
	}
	ebitenutil.DebugPrintAt(dst, text, x, b.Dy()-28)
}
