// Package render draws triangulations as raster images.
package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"triangulator/internal/domain"
)

// ErrEmpty is returned when there is nothing to draw
var ErrEmpty = errors.New("render: empty triangulation")

// Options controls the output image
type Options struct {
	Width, Height int
	Padding       float64
	LineWidth     float64
	Background    color.Color
	Fill          color.Color // nil disables filling
	Stroke        color.Color
	ShowVertices  bool
	VertexRadius  float64
	VertexColor   color.Color
}

// DefaultOptions returns an 800x800 wireframe over a light fill
func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       800,
		Padding:      20,
		LineWidth:    1.5,
		Background:   color.White,
		Fill:         color.NRGBA{R: 51, G: 127, B: 204, A: 255},
		Stroke:       color.NRGBA{R: 20, G: 20, B: 20, A: 255},
		ShowVertices: true,
		VertexRadius: 3,
		VertexColor:  color.NRGBA{R: 200, G: 40, B: 40, A: 255},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.LineWidth <= 0 {
		o.LineWidth = d.LineWidth
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	if o.Stroke == nil {
		o.Stroke = d.Stroke
	}
	if o.VertexRadius <= 0 {
		o.VertexRadius = d.VertexRadius
	}
	if o.VertexColor == nil {
		o.VertexColor = d.VertexColor
	}
	return o
}

// viewport maps mesh coordinates to pixels with a uniform scale,
// centering the mesh and putting +y up
type viewport struct {
	scale      float64
	offX, offY float64
	minX, minY float64
	height     float64
}

func newViewport(b domain.Bounds, o Options) viewport {
	availW := math.Max(float64(o.Width)-2*o.Padding, 1)
	availH := math.Max(float64(o.Height)-2*o.Padding, 1)

	w, h := b.Width(), b.Height()
	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = math.Min(availW/w, availH/h)
	case w > 0:
		scale = availW / w
	case h > 0:
		scale = availH / h
	}

	return viewport{
		scale:  scale,
		offX:   o.Padding + (availW-w*scale)/2,
		offY:   o.Padding + (availH-h*scale)/2,
		minX:   b.MinX,
		minY:   b.MinY,
		height: float64(o.Height),
	}
}

func (v viewport) project(p domain.Point) (float64, float64) {
	x := v.offX + (p.X-v.minX)*v.scale
	y := v.offY + (p.Y-v.minY)*v.scale
	return x, v.height - y
}

// Image draws tri into a new image
func Image(tri domain.Triangulation, opts Options) (image.Image, error) {
	if len(tri) == 0 {
		return nil, ErrEmpty
	}
	opts = opts.withDefaults()
	vp := newViewport(tri.Bounds(), opts)

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	dc.SetLineWidth(opts.LineWidth)
	dc.SetLineJoinRound()
	for _, t := range tri {
		x0, y0 := vp.project(t[0])
		x1, y1 := vp.project(t[1])
		x2, y2 := vp.project(t[2])

		dc.MoveTo(x0, y0)
		dc.LineTo(x1, y1)
		dc.LineTo(x2, y2)
		dc.ClosePath()

		if opts.Fill != nil {
			dc.SetColor(opts.Fill)
			dc.FillPreserve()
		}
		dc.SetColor(opts.Stroke)
		dc.Stroke()
	}

	if opts.ShowVertices {
		dc.SetColor(opts.VertexColor)
		for _, p := range tri.Vertices() {
			x, y := vp.project(p)
			dc.DrawCircle(x, y, opts.VertexRadius)
			dc.Fill()
		}
	}

	return dc.Image(), nil
}

// PNG draws tri and writes it to w as PNG
func PNG(w io.Writer, tri domain.Triangulation, opts Options) error {
	img, err := Image(tri, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}
