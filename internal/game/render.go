package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/warpfield/internal/config"
	"github.com/iburimskiy/warpfield/internal/starfield"
)

const (
	spriteSize = 16
	pointScale = 0.5
	minRadius  = 0.5
	maxRadius  = 4.0

	// quads per DrawTriangles call, bounded by uint16 indices
	quadsPerBatch = math.MaxUint16 / 4
)

// Renderer turns per-star buffers into pixels.
type Renderer interface {
	Resize(width, height int)
	Render(dst *ebiten.Image, b *starfield.Buffers)
}

// camera is a perspective camera at the origin looking down -z.
type camera struct {
	focal     float64 // 1 / tan(fov/2)
	near, far float64
	halfW     float64
	halfH     float64
}

func newCamera(cfg config.CameraConfig) camera {
	return camera{
		focal: 1 / math.Tan(cfg.FOV*math.Pi/360),
		near:  cfg.Near,
		far:   cfg.Far,
	}
}

func (c *camera) resize(width, height int) {
	c.halfW = float64(width) / 2
	c.halfH = float64(height) / 2
}

// project maps a world point to screen pixels. scale is pixels per world unit
// at that depth. ok is false for points outside the view frustum depth range.
func (c *camera) project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	d := -z
	if d < c.near || d > c.far {
		return 0, 0, 0, false
	}
	scale = c.focal * c.halfH / d
	return c.halfW + x*scale, c.halfH - y*scale, scale, true
}

// pointRenderer draws every star as an additive, soft edged sprite.
type pointRenderer struct {
	cam      camera
	width    float64
	height   float64
	sprite   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newPointRenderer(cfg config.CameraConfig) *pointRenderer {
	return &pointRenderer{cam: newCamera(cfg)}
}

func (r *pointRenderer) Resize(width, height int) {
	r.width = float64(width)
	r.height = float64(height)
	r.cam.resize(width, height)
}

func (r *pointRenderer) Render(dst *ebiten.Image, b *starfield.Buffers) {
	if r.sprite == nil {
		r.sprite = newGlowSprite(spriteSize)
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	op := &ebiten.DrawTrianglesOptions{
		Blend:  ebiten.BlendLighter,
		Filter: ebiten.FilterLinear,
	}

	for i := 0; i < b.Len(); i++ {
		i3 := i * 3
		sx, sy, scale, ok := r.cam.project(
			float64(b.Positions[i3]), float64(b.Positions[i3+1]), float64(b.Positions[i3+2]))
		if !ok {
			continue
		}
		radius := float64(b.Sizes[i]) * scale * pointScale
		if radius < minRadius {
			radius = minRadius
		}
		if radius > maxRadius {
			radius = maxRadius
		}
		if sx+radius < 0 || sy+radius < 0 || sx-radius > r.width || sy-radius > r.height {
			continue
		}
		r.appendQuad(sx, sy, radius, b.Colors[i3], b.Colors[i3+1], b.Colors[i3+2])

		if len(r.vertices)/4 == quadsPerBatch {
			dst.DrawTriangles(r.vertices, r.indices, r.sprite, op)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
	}
	if len(r.vertices) > 0 {
		dst.DrawTriangles(r.vertices, r.indices, r.sprite, op)
	}
}

func (r *pointRenderer) appendQuad(cx, cy, radius float64, cr, cg, cb float32) {
	base := uint16(len(r.vertices))
	x0, y0 := float32(cx-radius), float32(cy-radius)
	x1, y1 := float32(cx+radius), float32(cy+radius)
	const s = spriteSize
	r.vertices = append(r.vertices,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: s, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: s, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: s, SrcY: s, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
	)
	r.indices = append(r.indices, base, base+1, base+2, base+1, base+3, base+2)
}

// newGlowSprite builds a white disc with a quadratic falloff toward the rim.
func newGlowSprite(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - c) / c
			dy := (float64(y) + 0.5 - c) / c
			a := clamp01(1 - (dx*dx + dy*dy))
			a *= a
			v := uint8(a * 255)
			i := (y*size + x) * 4
			// premultiplied alpha
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	img.WritePixels(pix)
	return img
}

// background is the clear colour behind the field.
var background = color.RGBA{R: 2, G: 3, B: 8, A: 255}
