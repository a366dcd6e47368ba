package mapnav

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits and grid geometry of MapEngine.
const (
	MinZoomLevel  = -4
	MaxZoomLevel  = 8
	gridSpacing   = 64.0 // world units between grid lines
	minGridPixels = 4.0  // grid lines closer than this are skipped
	nudgeFraction = 0.25 // share of the surface a nudge moves
)

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y, Width, Height float64
}

// scrollAnim holds active pan tweens for the view center.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	toX    float64
	toY    float64
}

// viewState is the serialized form of a MapEngine view.
type viewState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom int     `json:"zoom"`
}

// MapEngine is an in-memory Engine over an endless grid. It keeps a view
// center in world units and an integer zoom level where each step doubles
// the scale. PanTo animates over PanDuration seconds using gween.
type MapEngine struct {
	// X and Y are the world position at the center of the surface.
	X, Y float64
	// Zoom is the zoom level; the scale is 2^Zoom.
	Zoom int
	// PanDuration is the animated pan length in seconds. Zero snaps.
	PanDuration float64

	// BoundsEnabled clamps the view center to Bounds.
	BoundsEnabled bool
	Bounds        Rect

	Background color.Color
	GridColor  color.Color
	AxisColor  color.Color

	width, height int
	home          viewState
	scrollTween   *scrollAnim
}

// NewMapEngine returns an engine centered on (x, y) at zoom level 0. ResetView
// returns to this view.
func NewMapEngine(x, y float64) *MapEngine {
	return &MapEngine{
		X:          x,
		Y:          y,
		Background: color.RGBA{R: 0x1a, G: 0x1d, B: 0x24, A: 0xff},
		GridColor:  color.RGBA{R: 0x3a, G: 0x40, B: 0x4c, A: 0xff},
		AxisColor:  color.RGBA{R: 0xc8, G: 0x6e, B: 0x3c, A: 0xff},
		home:       viewState{X: x, Y: y},
	}
}

// SetBounds enables clamping of the view center to bounds.
func (m *MapEngine) SetBounds(bounds Rect) {
	m.BoundsEnabled = true
	m.Bounds = bounds
	m.clampToBounds()
}

// Scale returns the number of pixels per world unit.
func (m *MapEngine) Scale() float64 {
	return math.Ldexp(1, m.Zoom)
}

// ScreenToWorld converts surface pixels to world units.
func (m *MapEngine) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	s := m.Scale()
	return m.X + (sx-float64(m.width)/2)/s, m.Y + (sy-float64(m.height)/2)/s
}

// WorldToScreen converts world units to surface pixels.
func (m *MapEngine) WorldToScreen(wx, wy float64) (sx, sy float64) {
	s := m.Scale()
	return (wx-m.X)*s + float64(m.width)/2, (wy-m.Y)*s + float64(m.height)/2
}

func (m *MapEngine) SetSurfaceSize(width, height int) bool {
	if width <= 0 || height <= 0 || (width == m.width && height == m.height) {
		return false
	}
	m.width, m.height = width, height
	m.clampToBounds()
	return true
}

func (m *MapEngine) PanTo(x, y int) bool {
	m.finishScroll()
	wx, wy := m.ScreenToWorld(float64(x), float64(y))
	wx, wy = m.clampPoint(wx, wy)
	if wx == m.X && wy == m.Y {
		return false
	}
	if m.PanDuration <= 0 {
		m.X, m.Y = wx, wy
		return true
	}
	d := float32(m.PanDuration)
	m.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(m.X), float32(wx), d, ease.OutQuad),
		tweenY: gween.New(float32(m.Y), float32(wy), d, ease.OutQuad),
		toX:    wx,
		toY:    wy,
	}
	return true
}

func (m *MapEngine) PanByDelta(dx, dy int) bool {
	m.finishScroll()
	s := m.Scale()
	return m.moveCenter(m.X+float64(dx)/s, m.Y+float64(dy)/s)
}

func (m *MapEngine) Nudge(dir Direction) bool {
	m.finishScroll()
	s := m.Scale()
	stepX := float64(m.width) * nudgeFraction / s
	stepY := float64(m.height) * nudgeFraction / s
	switch dir {
	case North:
		return m.moveCenter(m.X, m.Y-stepY)
	case East:
		return m.moveCenter(m.X+stepX, m.Y)
	case South:
		return m.moveCenter(m.X, m.Y+stepY)
	case West:
		return m.moveCenter(m.X-stepX, m.Y)
	default:
		return false
	}
}

func (m *MapEngine) ZoomIn(steps int, anchored bool, x, y int) bool {
	return m.zoomBy(steps, anchored, x, y)
}

func (m *MapEngine) ZoomOut(steps int, anchored bool, x, y int) bool {
	return m.zoomBy(-steps, anchored, x, y)
}

func (m *MapEngine) ResetView() bool {
	m.scrollTween = nil
	if m.X == m.home.X && m.Y == m.home.Y && m.Zoom == m.home.Zoom {
		return false
	}
	m.X, m.Y, m.Zoom = m.home.X, m.home.Y, m.home.Zoom
	m.clampToBounds()
	return true
}

// Update advances the pan animation by dt seconds. It implements Animator.
func (m *MapEngine) Update(dt float64) bool {
	if m.scrollTween == nil {
		return false
	}
	st := m.scrollTween
	if !st.doneX {
		val, done := st.tweenX.Update(float32(dt))
		m.X = float64(val)
		st.doneX = done
	}
	if !st.doneY {
		val, done := st.tweenY.Update(float32(dt))
		m.Y = float64(val)
		st.doneY = done
	}
	if st.doneX && st.doneY {
		m.X, m.Y = st.toX, st.toY
		m.scrollTween = nil
	}
	return true
}

// RenderInto draws the grid and the world axes. It returns false when the
// surface size is unknown.
func (m *MapEngine) RenderInto(surface *ebiten.Image) bool {
	if surface == nil || m.width == 0 || m.height == 0 {
		return false
	}
	surface.Fill(m.Background)

	spacing := gridSpacing * m.Scale()
	for spacing < minGridPixels {
		spacing *= 2
	}
	w, h := float64(m.width), float64(m.height)
	ox, oy := m.WorldToScreen(0, 0)
	for x := math.Mod(ox, spacing); x < w; x += spacing {
		vector.StrokeLine(surface, float32(x), 0, float32(x), float32(h), 1, m.GridColor, false)
	}
	for y := math.Mod(oy, spacing); y < h; y += spacing {
		vector.StrokeLine(surface, 0, float32(y), float32(w), float32(y), 1, m.GridColor, false)
	}
	vector.StrokeLine(surface, float32(ox), 0, float32(ox), float32(h), 2, m.AxisColor, false)
	vector.StrokeLine(surface, 0, float32(oy), float32(w), float32(oy), 2, m.AxisColor, false)
	return true
}

func (m *MapEngine) BackgroundColor() color.Color {
	return m.Background
}

func (m *MapEngine) DescribeParameters() string {
	return fmt.Sprintf("center (%.1f, %.1f)  zoom %d  scale %g  surface %dx%d",
		m.X, m.Y, m.Zoom, m.Scale(), m.width, m.height)
}

func (m *MapEngine) SerializeState() string {
	m.finishScroll()
	data, err := json.Marshal(viewState{X: m.X, Y: m.Y, Zoom: m.Zoom})
	if err != nil {
		return ""
	}
	return string(data)
}

func (m *MapEngine) RestoreState(state string) error {
	var vs viewState
	if err := json.Unmarshal([]byte(state), &vs); err != nil {
		return fmt.Errorf("restore view state: %w", err)
	}
	if vs.Zoom < MinZoomLevel || vs.Zoom > MaxZoomLevel {
		return fmt.Errorf("restore view state: zoom %d out of range", vs.Zoom)
	}
	m.scrollTween = nil
	m.X, m.Y, m.Zoom = vs.X, vs.Y, vs.Zoom
	m.clampToBounds()
	return nil
}

// zoomBy changes the zoom level by delta. Anchored zoom keeps the world
// point under (x, y) at (x, y); otherwise the view re-centers on it.
func (m *MapEngine) zoomBy(delta int, anchored bool, x, y int) bool {
	m.finishScroll()
	level := min(MaxZoomLevel, max(MinZoomLevel, m.Zoom+delta))
	wx, wy := m.ScreenToWorld(float64(x), float64(y))
	if level == m.Zoom && (anchored || (wx == m.X && wy == m.Y)) {
		return false
	}
	m.Zoom = level
	if !anchored {
		m.X, m.Y = wx, wy
		m.clampToBounds()
		return true
	}
	s := m.Scale()
	m.X = wx - (float64(x)-float64(m.width)/2)/s
	m.Y = wy - (float64(y)-float64(m.height)/2)/s
	m.clampToBounds()
	return true
}

func (m *MapEngine) moveCenter(x, y float64) bool {
	x, y = m.clampPoint(x, y)
	if x == m.X && y == m.Y {
		return false
	}
	m.X, m.Y = x, y
	return true
}

// finishScroll jumps to the end of a running pan so a new command starts
// from the final position.
func (m *MapEngine) finishScroll() {
	if m.scrollTween == nil {
		return
	}
	m.X, m.Y = m.scrollTween.toX, m.scrollTween.toY
	m.scrollTween = nil
}

func (m *MapEngine) clampToBounds() {
	m.X, m.Y = m.clampPoint(m.X, m.Y)
}

// clampPoint restricts a view center so the visible area stays within
// Bounds. When the bounds are smaller than the visible area the view is
// centered on them.
func (m *MapEngine) clampPoint(x, y float64) (float64, float64) {
	if !m.BoundsEnabled {
		return x, y
	}
	s := m.Scale()
	halfW := float64(m.width) / (2 * s)
	halfH := float64(m.height) / (2 * s)

	minX := m.Bounds.X + halfW
	maxX := m.Bounds.X + m.Bounds.Width - halfW
	minY := m.Bounds.Y + halfH
	maxY := m.Bounds.Y + m.Bounds.Height - halfH

	if minX > maxX {
		x = m.Bounds.X + m.Bounds.Width/2
	} else {
		x = math.Max(minX, math.Min(x, maxX))
	}
	if minY > maxY {
		y = m.Bounds.Y + m.Bounds.Height/2
	} else {
		y = math.Max(minY, math.Min(y, maxY))
	}
	return x, y
}
