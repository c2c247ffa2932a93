// internal/signature/surface.go
//
// The drawing surface behind the signature pad. It is a single flattened
// bitmap: the guide line and the user's strokes land in the same pixels,
// so whatever is exported is exactly what the user saw while signing.

package signature

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

const (
	// Width and Height are the fixed logical pixel dimensions of the surface.
	Width  = 500
	Height = 200

	// StrokeWidth is the constant pen width for strokes and the guide line.
	StrokeWidth = 2.0

	// guideInset is the distance of the guide line from the left, right and
	// bottom edges.
	guideInset = 50

	// capSegments is the polygon resolution used for round caps and joins.
	capSegments = 16
)

var (
	// InkColor is used for every user stroke.
	InkColor = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	// GuideColor is used for the baseline that shows where to sign.
	GuideColor = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

// Point is a 2D coordinate. Surface methods expect surface-local pixels.
type Point struct {
	X float64
	Y float64
}

// Surface is a fixed-size RGBA bitmap that strokes are rasterized onto.
// It is not safe for concurrent use.
type Surface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
}

// NewSurface allocates a surface with the guide line already rendered.
func NewSurface() *Surface {
	s := &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, Width, Height)),
		raster: vector.NewRasterizer(Width, Height),
	}
	s.Reset()
	return s
}

// Reset erases everything and re-renders the guide line.
func (s *Surface) Reset() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	y := float64(Height - guideInset)
	s.segment(Point{X: guideInset, Y: y}, Point{X: Width - guideInset, Y: y}, GuideColor, true)
}

// StrokeSegment draws one piece of a stroke from `from` to `to` in ink.
// When first is true the stroke's starting cap is drawn too; later segments
// only add the join at `to` so overlapping caps do not darken edges.
func (s *Surface) StrokeSegment(from, to Point, first bool) {
	s.segment(from, to, InkColor, first)
}

// Decode rebuilds a surface from an encoded artifact image, e.g. to preview a
// capture after the pad has been cleared.
func Decode(data []byte) (*Surface, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("signature: decode png: %w", err)
	}
	s := &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, Width, Height)),
		raster: vector.NewRasterizer(Width, Height),
	}
	draw.Draw(s.img, s.img.Bounds(), src, src.Bounds().Min, draw.Src)
	return s, nil
}

// Bounds reports the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Image returns a copy of the current bitmap.
func (s *Surface) Image() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Encode serializes the surface as PNG.
func (s *Surface) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.img); err != nil {
		return nil, fmt.Errorf("signature: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Cell summarizes one block of pixels for coarse previews.
type Cell struct {
	Ink   bool
	Guide bool
}

// Thumbnail downsamples the surface into a cols×rows grid. A cell is Ink when
// any pixel in its block carries a dark opaque stroke, otherwise Guide when it
// carries the light baseline.
func (s *Surface) Thumbnail(cols, rows int) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]Cell, rows)
	for row := 0; row < rows; row++ {
		grid[row] = make([]Cell, cols)
		y0, y1 := row*Height/rows, (row+1)*Height/rows
		for col := 0; col < cols; col++ {
			x0, x1 := col*Width/cols, (col+1)*Width/cols
			grid[row][col] = s.summarize(image.Rect(x0, y0, x1, y1))
		}
	}
	return grid
}

func (s *Surface) summarize(r image.Rectangle) Cell {
	var cell Cell
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := s.img.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			// Pixels are premultiplied; compare the straight red channel.
			if px.A >= 0x80 && int(px.R)*0xff < 0x80*int(px.A) {
				cell.Ink = true
				return cell
			}
			cell.Guide = true
		}
	}
	return cell
}

func (s *Surface) segment(from, to Point, c color.Color, startCap bool) {
	src := image.NewUniform(c)
	half := StrokeWidth / 2
	dx, dy := to.X-from.X, to.Y-from.Y
	if length := math.Hypot(dx, dy); length > 0 {
		nx, ny := -dy/length*half, dx/length*half
		s.fill(src, []Point{
			{X: from.X + nx, Y: from.Y + ny},
			{X: to.X + nx, Y: to.Y + ny},
			{X: to.X - nx, Y: to.Y - ny},
			{X: from.X - nx, Y: from.Y - ny},
		})
	}
	if startCap {
		s.fill(src, disc(from, half))
	}
	s.fill(src, disc(to, half))
}

// fill rasterizes a closed polygon into its bounding box only.
func (s *Surface) fill(src image.Image, poly []Point) {
	if len(poly) < 3 {
		return
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}
	w, h := box.Dx(), box.Dy()
	s.raster.Reset(w, h)
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	clampX := func(v float64) float32 { return float32(math.Max(0, math.Min(float64(w), v-ox))) }
	clampY := func(v float64) float32 { return float32(math.Max(0, math.Min(float64(h), v-oy))) }
	s.raster.MoveTo(clampX(poly[0].X), clampY(poly[0].Y))
	for _, p := range poly[1:] {
		s.raster.LineTo(clampX(p.X), clampY(p.Y))
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, box, src, image.Point{})
}

func disc(center Point, radius float64) []Point {
	pts := make([]Point, capSegments)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / capSegments
		pts[i] = Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return pts
}
