package surface

// Canvas is an in-memory surface. Renderers read its shapes in draw order.
type Canvas struct {
	shapes []*element
}

// NewCanvas creates an empty canvas
func NewCanvas() *Canvas {
	return &Canvas{}
}

type element struct {
	canvas  *Canvas
	kind    Kind
	x, y    float64
	w, h    float64
	hidden  bool
	color   string
	text    string
	removed bool
}

func (c *Canvas) add(e *element) *element {
	e.canvas = c
	c.shapes = append(c.shapes, e)
	return e
}

func (c *Canvas) Rect(x, y, w, h float64) Shape {
	return c.add(&element{kind: KindRect, x: x, y: y, w: w, h: h})
}

// Line stores a line as its bounding box; width/height may be zero
func (c *Canvas) Line(x1, y1, x2, y2 float64) Shape {
	return c.add(&element{kind: KindLine, x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}

func (c *Canvas) Text(x, y float64, s string) Label {
	return c.add(&element{kind: KindText, x: x, y: y, h: 1, text: s})
}

// Shapes returns the live shapes in draw order
func (c *Canvas) Shapes() []Shape {
	out := make([]Shape, 0, len(c.shapes))
	for _, e := range c.shapes {
		out = append(out, e)
	}
	return out
}

// Len is the number of live shapes
func (c *Canvas) Len() int { return len(c.shapes) }

func (c *Canvas) remove(e *element) {
	for i, s := range c.shapes {
		if s == e {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return
		}
	}
}

func (e *element) Kind() Kind          { return e.kind }
func (e *element) X() float64          { return e.x }
func (e *element) Y() float64          { return e.y }
func (e *element) Width() float64      { return e.w }
func (e *element) Height() float64     { return e.h }
func (e *element) SetX(x float64)      { e.x = x }
func (e *element) SetY(y float64)      { e.y = y }
func (e *element) SetWidth(w float64)  { e.w = w }
func (e *element) SetHeight(h float64) { e.h = h }
func (e *element) Move(x, y float64)   { e.x, e.y = x, y }
func (e *element) Show()               { e.hidden = false }
func (e *element) Hide()               { e.hidden = true }
func (e *element) Visible() bool       { return !e.hidden && !e.removed }
func (e *element) Fill(color string)   { e.color = color }
func (e *element) Color() string       { return e.color }
func (e *element) Text() string        { return e.text }
func (e *element) SetText(s string)    { e.text = s }

func (e *element) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.canvas.remove(e)
}
