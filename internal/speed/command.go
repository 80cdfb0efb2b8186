package speed

// Kind identifies an input command.
type Kind int

const (
	KeyUp     Kind = iota // Raise target by KeyStep
	KeyDown               // Lower target by KeyStep
	Cruise                // Go / stop toggle
	Wheel                 // Amount holds the wheel delta; only its sign matters
	DragStart             // Y holds the pointer position
	DragMove              // Y and ViewportHeight hold pointer position and viewport size
	DragEnd
	Tap // Quick press on the gauge; stops unless a drag is active
	Set // Amount holds the new target
)

// Source tells mouse drags from touch drags.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Command is one discrete input event.
type Command struct {
	Kind           Kind
	Amount         float64
	Y              float64
	ViewportHeight float64
	Source         Source
}

// Apply is the single entry point through which input mutates speed state.
func (c *Controller) Apply(cmd Command) {
	switch cmd.Kind {
	case KeyUp:
		c.Nudge(c.cfg.KeyStep)
	case KeyDown:
		c.Nudge(-c.cfg.KeyStep)
	case Cruise:
		c.ToggleCruise()
	case Wheel:
		switch {
		case cmd.Amount > 0:
			c.Nudge(c.cfg.WheelStep)
		case cmd.Amount < 0:
			c.Nudge(-c.cfg.WheelStep)
		}
	case DragStart:
		c.dragging = true
		c.dragSource = cmd.Source
		c.dragStartY = cmd.Y
		c.dragStartAt = c.target
	case DragMove:
		if !c.dragging || cmd.ViewportHeight <= 0 {
			return
		}
		c.SetTarget(c.dragStartAt + c.DragDelta(c.dragStartY-cmd.Y, cmd.ViewportHeight, c.dragSource))
	case DragEnd:
		c.dragging = false
	case Tap:
		if !c.dragging {
			c.Stop()
		}
	case Set:
		c.SetTarget(cmd.Amount)
	}
}

// DragDelta maps an upward pointer travel of dy pixels to a target change.
func (c *Controller) DragDelta(dy, viewportHeight float64, src Source) float64 {
	sensitivity := c.cfg.MouseSensitivity
	if src == Touch {
		sensitivity = c.cfg.TouchSensitivity
	}
	return (dy / viewportHeight) * c.cfg.MaxSpeed * sensitivity
}
