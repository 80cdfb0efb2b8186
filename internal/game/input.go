package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/warpfield/internal/speed"
)

// Held keys repeat like browser keydown events, counted in Update calls.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 4
)

var (
	speedUpKeys   = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	speedDownKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0)
}

// pollInput translates this frame's ebiten input state into speed commands
// and handles the application keys.
func (g *Game) pollInput(now time.Duration) error {
	var cmds []speed.Command

	for _, k := range speedUpKeys {
		if repeating(k) {
			cmds = append(cmds, speed.Command{Kind: speed.KeyUp})
		}
	}
	for _, k := range speedDownKeys {
		if repeating(k) {
			cmds = append(cmds, speed.Command{Kind: speed.KeyDown})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		cmds = append(cmds, speed.Command{Kind: speed.Cruise})
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		cmds = append(cmds, speed.Command{Kind: speed.Wheel, Amount: dy})
	}

	// Mouse drag on the gauge
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.gauge.Contains(mx, my) {
		cmds = append(cmds, g.pointer.press(mx, my, speed.Mouse, 0)...)
	}
	if g.pointer.owns(speed.Mouse, 0) {
		cmds = append(cmds, g.pointer.move(mx, my, g.height)...)
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			cmds = append(cmds, g.pointer.release()...)
		}
	}

	// Touch drag on the gauge
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		g.hints.Touch()
		x, y := ebiten.TouchPosition(id)
		if g.gauge.Contains(x, y) {
			cmds = append(cmds, g.pointer.press(x, y, speed.Touch, id)...)
		}
	}
	if g.pointer.active && g.pointer.source == speed.Touch {
		id := g.pointer.touchID
		if inpututil.IsTouchJustReleased(id) {
			cmds = append(cmds, g.pointer.release()...)
		} else {
			x, y := ebiten.TouchPosition(id)
			cmds = append(cmds, g.pointer.move(x, y, g.height)...)
		}
	}

	for _, cmd := range cmds {
		g.Apply(cmd, now)
	}

	return g.handleAppKeys(appKeys{
		nextPreset: inpututil.IsKeyJustPressed(ebiten.KeyTab),
		openPreset: inpututil.IsKeyJustPressed(ebiten.KeyO),
		mute:       inpututil.IsKeyJustPressed(ebiten.KeyM),
		quit:       inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	})
}

// appKeys are the application keys pressed this frame.
type appKeys struct {
	nextPreset bool
	openPreset bool
	mute       bool
	quit       bool
}

// handleAppKeys acts on every key pressed this frame. Quit is checked last.
func (g *Game) handleAppKeys(k appKeys) error {
	if k.nextPreset {
		g.nextPreset()
	}
	if k.openPreset {
		if err := g.openPresetDialog(); err != nil {
			g.fail("loading preset", err)
		}
	}
	if k.mute {
		g.toggleMute()
	}
	if k.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) openPresetDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Speed Preset"),
		zenity.FileFilters{{
			Name:     "Speed preset",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.LoadPreset(filename)
}
