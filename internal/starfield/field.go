// Package starfield simulates the star particles that stream past the viewer.
package starfield

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config holds the star pool parameters.
type Config struct {
	Count         int     `yaml:"count"`
	Extent        float64 `yaml:"extent"`       // Side of the cube stars live in, centred at origin
	SizeMin       float64 `yaml:"size_min"`     // Intrinsic size = SizeMin + rand*SizeRange
	SizeRange     float64 `yaml:"size_range"`
	VelocityMin   float64 `yaml:"velocity_min"` // Velocity = VelocityMin + rand*VelocityRange
	VelocityRange float64 `yaml:"velocity_range"`
	Hue           float64 `yaml:"hue"`          // 0-1, fixed for every star
	Saturation    float64 `yaml:"saturation"`   // 0-1
	SizeScale     float64 `yaml:"size_scale"`   // Display size = size * depth * SizeScale
}

// DefaultConfig returns the classic warp field: 30000 stars in a 2000 unit cube.
func DefaultConfig() Config {
	return Config{
		Count:         30000,
		Extent:        2000,
		SizeMin:       0.5,
		SizeRange:     3,
		VelocityMin:   0.5,
		VelocityRange: 2,
		Hue:           0.6,
		Saturation:    0.2,
		SizeScale:     3,
	}
}

// Particle is a single star.
type Particle struct {
	X, Y, Z  float64
	Size     float64
	Velocity float64
}

// Field owns the star pool and advances it every tick.
type Field struct {
	cfg       Config
	half      float64
	rng       *rand.Rand
	particles []Particle
}

// New creates a field with every star placed uniformly inside the cube.
func New(cfg Config, rng *rand.Rand) *Field {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	f := &Field{
		cfg:       cfg,
		half:      cfg.Extent / 2,
		rng:       rng,
		particles: make([]Particle, cfg.Count),
	}
	for i := range f.particles {
		f.particles[i] = Particle{
			X:        f.spread(),
			Y:        f.spread(),
			Z:        f.spread(),
			Size:     rng.Float64()*cfg.SizeRange + cfg.SizeMin,
			Velocity: rng.Float64()*cfg.VelocityRange + cfg.VelocityMin,
		}
	}
	return f
}

// spread returns a uniform value in (-half, half].
func (f *Field) spread() float64 {
	return f.cfg.Extent * (0.5 - f.rng.Float64())
}

// Len returns the number of stars.
func (f *Field) Len() int { return len(f.particles) }

// Particles exposes the pool for inspection. Callers must not modify it.
func (f *Field) Particles() []Particle { return f.particles }

// Update moves every star toward the viewer by speed*velocity. Stars that pass
// the forward edge wrap to the far side with a new lateral position.
// Returns how many stars were recycled.
func (f *Field) Update(speed float64) int {
	recycled := 0
	for i := range f.particles {
		p := &f.particles[i]
		p.Z += speed * p.Velocity
		if p.Z <= f.half {
			continue
		}
		p.Z = f.wrap(p.Z)
		p.X = f.spread()
		p.Y = f.spread()
		recycled++
	}
	return recycled
}

// wrap folds a z past the forward edge back into (-half, half]. A single
// overshoot is exactly z - Extent.
func (f *Field) wrap(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return f.spread()
	}
	if z -= f.cfg.Extent; z <= f.half {
		return z
	}
	z = math.Mod(z-f.half, f.cfg.Extent) - f.half
	if z <= -f.half {
		return f.half
	}
	return z
}

// Depth maps z in (-half, half] to [0, 1], 1 being nearest the viewer.
func (f *Field) Depth(z float64) float64 {
	return (f.half + z) / f.cfg.Extent
}

// Buffers are the flat per-star arrays handed to a renderer.
type Buffers struct {
	Positions []float32 // x, y, z per star
	Colors    []float32 // r, g, b per star, 0-1
	Sizes     []float32
}

// Len returns the number of stars described by the buffers.
func (b *Buffers) Len() int { return len(b.Sizes) }

func (b *Buffers) resize(n int) {
	if len(b.Sizes) == n {
		return
	}
	b.Positions = make([]float32, n*3)
	b.Colors = make([]float32, n*3)
	b.Sizes = make([]float32, n)
}

// DeriveBuffers writes position, depth-shaded color and display size for every
// star into b, reusing its backing arrays.
func (f *Field) DeriveBuffers(b *Buffers) {
	b.resize(len(f.particles))
	hue := f.cfg.Hue * 360
	for i, p := range f.particles {
		i3 := i * 3
		b.Positions[i3] = float32(p.X)
		b.Positions[i3+1] = float32(p.Y)
		b.Positions[i3+2] = float32(p.Z)

		depth := f.Depth(p.Z)
		c := colorful.Hsl(hue, f.cfg.Saturation, depth).Clamped()
		b.Colors[i3] = float32(c.R)
		b.Colors[i3+1] = float32(c.G)
		b.Colors[i3+2] = float32(c.B)

		b.Sizes[i] = float32(p.Size * depth * f.cfg.SizeScale)
	}
}
