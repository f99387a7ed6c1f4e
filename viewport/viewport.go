package viewport

import (
	"math"

	"golang.org/x/exp/constraints"
)

// zoomBase sets how fast a vertical drag zooms: one viewport height of
// drag multiplies the zoom by this factor
const zoomBase = 4.0

// Viewport is the visible rectangle over a much larger surface.
// Screen coordinates are terminal cells; surface coordinates are grid units.
type Viewport struct {
	X, Y          float64 // top-left of the visible rectangle on the surface
	Width, Height float64 // visible surface size

	ScreenWidth, ScreenHeight float64

	SurfaceWidth, SurfaceHeight float64

	root root
}

// root is the snapshot taken at the start of a pan/zoom gesture
type root struct {
	screenX, screenY   float64
	surfaceX, surfaceY float64
	x, y               float64
	width, height      float64
	zoom               float64
}

// New creates a viewport at zoom 1 anchored at the surface origin
func New(screenW, screenH, surfaceW, surfaceH float64) *Viewport {
	v := &Viewport{
		ScreenWidth:   screenW,
		ScreenHeight:  screenH,
		SurfaceWidth:  surfaceW,
		SurfaceHeight: surfaceH,
		Width:         screenW,
		Height:        screenH,
	}
	v.fit()
	return v
}

// Zoom is screen units per surface unit
func (v *Viewport) Zoom() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.ScreenHeight / v.Height
}

// MinZoom is the zoom at which the whole surface height is visible
func (v *Viewport) MinZoom() float64 {
	return v.ScreenHeight / v.SurfaceHeight
}

// ToSurface converts a screen point to surface coordinates
func (v *Viewport) ToSurface(sx, sy float64) (float64, float64) {
	z := v.Zoom()
	return v.X + sx/z, v.Y + sy/z
}

// ToScreen converts a surface point to screen coordinates
func (v *Viewport) ToScreen(x, y float64) (float64, float64) {
	z := v.Zoom()
	return (x - v.X) * z, (y - v.Y) * z
}

// CenterOn moves the visible rectangle so the surface point is centered
func (v *Viewport) CenterOn(x, y float64) {
	v.X = clamp(x-v.Width/2, 0, math.Max(0, v.SurfaceWidth-v.Width))
	v.Y = clamp(y-v.Height/2, 0, math.Max(0, v.SurfaceHeight-v.Height))
}

// Resize changes the screen size keeping the current zoom
func (v *Viewport) Resize(screenW, screenH float64) {
	z := v.Zoom()
	v.ScreenWidth, v.ScreenHeight = screenW, screenH
	v.Width, v.Height = screenW/z, screenH/z
	v.fit()
}

// Begin snapshots the pointer and viewport at the start of a gesture
func (v *Viewport) Begin(sx, sy float64) {
	x, y := v.ToSurface(sx, sy)
	v.root = root{
		screenX:  sx,
		screenY:  sy,
		surfaceX: x,
		surfaceY: y,
		x:        v.X,
		y:        v.Y,
		width:    v.Width,
		height:   v.Height,
		zoom:     v.Zoom(),
	}
}

// Pan moves the view opposite to the pointer drag since Begin
func (v *Viewport) Pan(sx, sy float64) {
	r := v.root
	dx, dy := sx-r.screenX, sy-r.screenY
	scale := 1 / r.zoom
	v.X = clamp(r.x-dx*scale, 0, math.Max(0, v.SurfaceWidth-r.width))
	v.Y = clamp(r.y-dy*scale, 0, math.Max(0, v.SurfaceHeight-r.height))
	v.Width, v.Height = r.width, r.height
}

// ZoomDrag scales the view exponentially with the vertical drag since Begin,
// keeping the surface point that was under the pointer in place
func (v *Viewport) ZoomDrag(sx, sy float64) {
	r := v.root
	dy := sy - r.screenY
	change := math.Pow(zoomBase, dy/r.zoom/r.height)
	zoom := r.zoom * change
	if min := v.MinZoom(); zoom < min {
		zoom = min
		change = zoom / r.zoom
	}

	offX := r.surfaceX - r.x
	offY := r.surfaceY - r.y
	width := r.width / change
	height := r.height / change

	v.Width, v.Height = width, height
	v.X = clamp(r.surfaceX-offX/change, 0, math.Max(0, v.SurfaceWidth-width))
	v.Y = clamp(r.surfaceY-offY/change, 0, math.Max(0, v.SurfaceHeight-height))
}

// fit clamps the visible rectangle to the surface after a size change
func (v *Viewport) fit() {
	if v.Height > v.SurfaceHeight {
		scale := v.SurfaceHeight / v.Height
		v.Height = v.SurfaceHeight
		v.Width *= scale
	}
	v.X = clamp(v.X, 0, math.Max(0, v.SurfaceWidth-v.Width))
	v.Y = clamp(v.Y, 0, math.Max(0, v.SurfaceHeight-v.Height))
}

func clamp[T constraints.Ordered](n, lo, hi T) T {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
