package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/warpfield/internal/speed"
)

// pointerTracker turns a press / move / release sequence on the gauge into
// drag and tap commands. One pointer at a time; the first to press owns it.
type pointerTracker struct {
	slop float64

	active   bool
	source   speed.Source
	touchID  ebiten.TouchID
	startX   int
	startY   int
	lastY    int
	traveled bool
}

func (p *pointerTracker) press(x, y int, src speed.Source, id ebiten.TouchID) []speed.Command {
	if p.active {
		return nil
	}
	p.active = true
	p.source = src
	p.touchID = id
	p.startX, p.startY, p.lastY = x, y, y
	p.traveled = false
	return []speed.Command{{Kind: speed.DragStart, Y: float64(y), Source: src}}
}

func (p *pointerTracker) move(x, y, viewportHeight int) []speed.Command {
	if !p.active {
		return nil
	}
	dx, dy := float64(x-p.startX), float64(y-p.startY)
	if dx*dx+dy*dy > p.slop*p.slop {
		p.traveled = true
	}
	if y == p.lastY {
		return nil
	}
	p.lastY = y
	return []speed.Command{{Kind: speed.DragMove, Y: float64(y), ViewportHeight: float64(viewportHeight)}}
}

// release ends the drag. A release that never left the slop radius counts as a tap.
func (p *pointerTracker) release() []speed.Command {
	if !p.active {
		return nil
	}
	p.active = false
	cmds := []speed.Command{{Kind: speed.DragEnd}}
	if !p.traveled {
		cmds = append(cmds, speed.Command{Kind: speed.Tap})
	}
	return cmds
}

func (p *pointerTracker) owns(src speed.Source, id ebiten.TouchID) bool {
	if !p.active || p.source != src {
		return false
	}
	return src == speed.Mouse || p.touchID == id
}
