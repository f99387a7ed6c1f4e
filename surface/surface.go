package surface

// Kind identifies what a shape draws as
type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindText
)

// Shape is a drawable primitive on the surface
type Shape interface {
	Kind() Kind
	X() float64
	Y() float64
	Width() float64
	Height() float64
	SetX(x float64)
	SetY(y float64)
	SetWidth(w float64)
	SetHeight(h float64)
	Move(x, y float64)
	Show()
	Hide()
	Visible() bool
	Fill(color string)
	Color() string
	Remove()
}

// Label is a text shape
type Label interface {
	Shape
	Text() string
	SetText(s string)
}

// Surface creates shapes. Shapes stay on the surface until removed.
type Surface interface {
	Rect(x, y, w, h float64) Shape
	Line(x1, y1, x2, y2 float64) Shape
	Text(x, y float64, s string) Label
}

// Box is an axis-aligned rectangle in surface coordinates
type Box struct {
	X1, Y1, X2, Y2 float64
}

// BoxOf returns the bounding box of a shape
func BoxOf(s Shape) Box {
	return Box{X1: s.X(), Y1: s.Y(), X2: s.X() + s.Width(), Y2: s.Y() + s.Height()}
}

// Span returns the box between two corners in any order
func Span(x1, y1, x2, y2 float64) Box {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Intersects is the separating-axis test on x and y; touching edges count
func Intersects(a, b Box) bool {
	if a.X2 < b.X1 || a.X1 > b.X2 {
		return false
	}
	if a.Y2 < b.Y1 || a.Y1 > b.Y2 {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the box (right/bottom open)
func (b Box) Contains(x, y float64) bool {
	return x >= b.X1 && x < b.X2 && y >= b.Y1 && y < b.Y2
}
