package boundary

// Axis maps padded data values onto a screen interval.
// With Invert set, larger values are placed closer to the origin end,
// e.g. for a y axis on a screen that grows downwards.
type Axis struct {
	Origin float64
	Extent float64
	Invert bool
}

// Screen maps the value v of a [min, max] data range onto the axis.
func (a Axis) Screen(v, min, max float64) float64 {
	f := (v - (min - Padding)) / (max - min + 2*Padding)
	if a.Invert {
		return a.Origin + a.Extent - f*a.Extent
	}
	return a.Origin + f*a.Extent
}

// Value is the inverse of Screen.
func (a Axis) Value(s, min, max float64) float64 {
	f := (s - a.Origin) / a.Extent
	if a.Invert {
		f = 1 - f
	}
	return f*(max-min+2*Padding) + min - Padding
}

// Viewport is the screen area a graph is drawn into.
type Viewport struct {
	X Axis
	Y Axis
}

// NewViewport creates a viewport at the given top-left corner,
// with the y axis growing downwards.
func NewViewport(x, y, width, height float64) Viewport {
	return Viewport{
		X: Axis{Origin: x, Extent: width},
		Y: Axis{Origin: y, Extent: height, Invert: true},
	}
}

// Screen maps the data point onto the viewport, based on the current graph envelope.
func (g *Graph) Screen(vp Viewport, x, y float64) (float64, float64) {
	return vp.X.Screen(x, g.min.X, g.max.X), vp.Y.Screen(y, g.min.Y, g.max.Y)
}

// Value maps the screen coordinates back onto the data space.
func (g *Graph) Value(vp Viewport, sx, sy float64) (float64, float64) {
	return vp.X.Value(sx, g.min.X, g.max.X), vp.Y.Value(sy, g.min.Y, g.max.Y)
}

// Screen maps the data point onto the viewport, based on the captured envelope.
func (s State) Screen(vp Viewport, x, y float64) (float64, float64) {
	return vp.X.Screen(x, s.Min.X, s.Max.X), vp.Y.Screen(y, s.Min.Y, s.Max.Y)
}
