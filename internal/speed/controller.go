// Package speed turns discrete input into a smoothed warp speed.
package speed

// Controller owns the target and smoothed current speed.
// Both values always stay inside [MinSpeed, MaxSpeed].
type Controller struct {
	cfg     Config
	current float64
	target  float64

	// drag state
	dragging    bool
	dragSource  Source
	dragStartY  float64
	dragStartAt float64
}

// NewController creates a controller at rest (min speed).
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:     cfg,
		current: cfg.MinSpeed,
		target:  cfg.MinSpeed,
	}
}

// Config returns the active constants.
func (c *Controller) Config() Config { return c.cfg }

// Configure swaps the constants, keeping the current state clamped to the new bounds.
func (c *Controller) Configure(cfg Config) {
	c.cfg = cfg
	c.current = cfg.clamp(c.current)
	c.target = cfg.clamp(c.target)
	c.dragStartAt = cfg.clamp(c.dragStartAt)
}

// Current returns the smoothed speed.
func (c *Controller) Current() float64 { return c.current }

// Target returns the speed input is steering toward.
func (c *Controller) Target() float64 { return c.target }

// Fraction returns current speed as a fraction of MaxSpeed.
func (c *Controller) Fraction() float64 {
	return c.current / c.cfg.MaxSpeed
}

// Dragging reports whether a pointer drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// SetTarget sets the target speed, clamped to bounds.
func (c *Controller) SetTarget(v float64) {
	c.target = c.cfg.clamp(v)
}

// Nudge moves the target by delta.
func (c *Controller) Nudge(delta float64) {
	c.SetTarget(c.target + delta)
}

// ToggleCruise engages cruise speed when nearly stopped, otherwise stops.
func (c *Controller) ToggleCruise() {
	if c.current < c.cfg.CruiseThreshold {
		c.SetTarget(c.cfg.CruiseSpeed)
		return
	}
	c.SetTarget(0)
}

// Stop sets the target to rest.
func (c *Controller) Stop() {
	c.SetTarget(0)
}

// Tick closes a fixed fraction of the gap between current and target and
// returns the new current speed.
func (c *Controller) Tick() float64 {
	c.current += (c.target - c.current) * c.cfg.Smoothing
	return c.current
}
