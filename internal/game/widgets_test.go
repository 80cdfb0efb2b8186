package game

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/warpfield/internal/config"
	"github.com/iburimskiy/warpfield/internal/speed"
)

func testGaugeConfig() config.GaugeConfig {
	return config.GaugeConfig{
		Bars:            20,
		X:               260,
		Y:               110,
		Width:           240,
		Height:          80,
		SpringFrequency: 6,
		SpringDamping:   0.8,
		TapSlop:         4,
	}
}

func TestActiveBars(t *testing.T) {
	tests := []struct {
		fraction float64
		want     int
	}{
		{0, 0},
		{0.049, 0},
		{0.05, 1},
		{0.5, 10},
		{0.999, 19},
		{1, 20},
		{1.5, 20},
		{-0.2, 0},
	}
	for _, tt := range tests {
		if got := activeBars(tt.fraction, 20); got != tt.want {
			t.Errorf("activeBars(%f) = %d, want %d", tt.fraction, got, tt.want)
		}
	}
}

func TestGaugeMarkerSettles(t *testing.T) {
	g := NewGauge(testGaugeConfig(), 60)

	for i := 0; i < 600; i++ {
		g.Update(25, 0.5)
	}

	if math.Abs(g.Marker()-0.5) > 1e-3 {
		t.Errorf("expected marker to settle at 0.5, got %f", g.Marker())
	}
	if g.Readout() != "25.0" {
		t.Errorf("expected readout 25.0, got %q", g.Readout())
	}
}

func TestGaugeHitTest(t *testing.T) {
	g := NewGauge(testGaugeConfig(), 60)
	g.Resize(1280, 720)

	if !g.Contains(1100, 650) {
		t.Error("expected point inside gauge to hit")
	}
	if g.Contains(100, 100) {
		t.Error("expected point outside gauge to miss")
	}

	// A viewport smaller than the anchor offset pins the gauge to the corner.
	g.Resize(100, 50)
	if r := g.Rect(); r.Min.X != 0 || r.Min.Y != 0 {
		t.Errorf("expected gauge pinned at origin, got %v", r)
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{12.34, "12.3"},
		{-3.06, "3.1"},
		{50, "50.0"},
	}
	for _, tt := range tests {
		if got := formatSpeed(tt.in); got != tt.want {
			t.Errorf("formatSpeed(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccentColorPremultiplied(t *testing.T) {
	c := accentColor(0, 128)
	if c.R > c.A || c.G > c.A || c.B > c.A {
		t.Errorf("expected premultiplied color, got %+v", c)
	}
	if c.G == 0 || c.B == 0 {
		t.Errorf("expected cyan at rest, got %+v", c)
	}
}

func TestHintsHideOnceAfterFirstInput(t *testing.T) {
	h := NewHints(3 * time.Second)

	if !h.Visible(10 * time.Second) {
		t.Fatal("expected hints visible until input")
	}
	h.Input(10 * time.Second)
	h.Input(12 * time.Second)
	if !h.Visible(12 * time.Second) {
		t.Error("expected hints still visible before delay elapses")
	}
	if h.Visible(13 * time.Second) {
		t.Error("expected hints hidden 3s after first input")
	}
	h.Input(20 * time.Second)
	if h.Visible(30 * time.Second) {
		t.Error("expected hints to stay hidden")
	}
}

func TestHintsVisibleDoesNotCommit(t *testing.T) {
	h := NewHints(3 * time.Second)
	h.Input(0)

	if h.Visible(5 * time.Second) {
		t.Fatal("expected hints hidden past the delay")
	}
	if !h.Visible(time.Second) {
		t.Error("expected Visible to leave the schedule untouched")
	}

	h.Update(5 * time.Second)
	if h.Visible(time.Second) {
		t.Error("expected Update to hide the hints for good")
	}
	h.Input(10 * time.Second)
	if h.Visible(11 * time.Second) {
		t.Error("expected later input not to bring hints back")
	}
}

func TestHintsTouchWording(t *testing.T) {
	h := NewHints(time.Second)
	if h.Text() != desktopHint {
		t.Errorf("expected desktop hint, got %q", h.Text())
	}
	h.Touch()
	if h.Text() != touchHint {
		t.Errorf("expected touch hint, got %q", h.Text())
	}
}

func TestPointerDragAndTap(t *testing.T) {
	tests := []struct {
		name  string
		moves [][2]int
		want  []speed.Kind
	}{
		{
			name: "tap",
			want: []speed.Kind{speed.DragStart, speed.DragEnd, speed.Tap},
		},
		{
			name:  "jitter within slop",
			moves: [][2]int{{101, 202}},
			want:  []speed.Kind{speed.DragStart, speed.DragMove, speed.DragEnd, speed.Tap},
		},
		{
			name:  "drag",
			moves: [][2]int{{100, 180}, {100, 150}},
			want:  []speed.Kind{speed.DragStart, speed.DragMove, speed.DragMove, speed.DragEnd},
		},
		{
			name:  "horizontal travel is not a tap",
			moves: [][2]int{{140, 200}},
			want:  []speed.Kind{speed.DragStart, speed.DragEnd},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pointerTracker{slop: 4}
			var got []speed.Command
			got = append(got, p.press(100, 200, speed.Mouse, 0)...)
			for _, m := range tt.moves {
				got = append(got, p.move(m[0], m[1], 720)...)
			}
			got = append(got, p.release()...)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d commands, got %+v", len(tt.want), got)
			}
			for i, k := range tt.want {
				if got[i].Kind != k {
					t.Errorf("command %d: expected kind %d, got %d", i, k, got[i].Kind)
				}
			}
		})
	}
}

func TestPointerOwnership(t *testing.T) {
	p := pointerTracker{slop: 4}
	p.press(0, 0, speed.Touch, 3)

	if cmds := p.press(5, 5, speed.Mouse, 0); cmds != nil {
		t.Error("expected second pointer to be ignored while one is active")
	}
	if !p.owns(speed.Touch, 3) || p.owns(speed.Touch, 4) || p.owns(speed.Mouse, 0) {
		t.Error("expected only touch 3 to own the drag")
	}
	if p.release(); p.owns(speed.Touch, 3) {
		t.Error("expected release to free the pointer")
	}
	if p.release() != nil {
		t.Error("expected release without press to be a no-op")
	}
}

func TestPointerDragMovesController(t *testing.T) {
	c := speed.NewController(speed.Classic())
	p := pointerTracker{slop: 4}

	for _, cmd := range p.press(1100, 700, speed.Mouse, 0) {
		c.Apply(cmd)
	}
	for _, cmd := range p.move(1100, 628, 720) {
		c.Apply(cmd)
	}
	// 72/720 * 50 * 1.5
	if math.Abs(c.Target()-7.5) > 1e-9 {
		t.Errorf("expected target 7.5, got %f", c.Target())
	}
	for _, cmd := range p.release() {
		c.Apply(cmd)
	}
	if c.Target() != 7.5 || c.Dragging() {
		t.Errorf("expected drag to end without stopping, target %f", c.Target())
	}
}

func TestCameraProject(t *testing.T) {
	cam := newCamera(config.CameraConfig{FOV: 90, Near: 0.1, Far: 2000})
	cam.resize(800, 600)

	sx, sy, _, ok := cam.project(0, 0, -100)
	if !ok || sx != 400 || sy != 300 {
		t.Errorf("expected axis point at screen centre, got (%f, %f, %v)", sx, sy, ok)
	}

	// At 90 degrees, y == depth sits on the top edge.
	_, sy, _, ok = cam.project(0, 100, -100)
	if !ok || math.Abs(sy) > 1e-9 {
		t.Errorf("expected top edge, got y=%f", sy)
	}

	sx, _, scale, _ := cam.project(50, 0, -100)
	if math.Abs(sx-550) > 1e-9 || math.Abs(scale-3) > 1e-9 {
		t.Errorf("expected x=550 scale=3, got x=%f scale=%f", sx, scale)
	}

	for _, z := range []float64{0, 10, -0.05, -2500} {
		if _, _, _, ok := cam.project(0, 0, z); ok {
			t.Errorf("expected z=%f to be culled", z)
		}
	}
}
