package signature

import (
	"errors"
	"time"
)

// EmptyMessage is shown when the user submits before drawing anything.
const EmptyMessage = "Please provide your signature before submitting"

// ErrEmptySignature is returned by Submit when no stroke has been drawn.
var ErrEmptySignature = errors.New("signature: nothing drawn")

// Bounds is the on-screen rectangle of the surface in client coordinates.
// A zero Width or Height means the rectangle matches the surface size.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Contains reports whether a client point falls inside the rectangle.
func (b Bounds) Contains(client Point) bool {
	w, h := b.size()
	return client.X >= b.Left && client.X < b.Left+w &&
		client.Y >= b.Top && client.Y < b.Top+h
}

// Local translates a client point into surface-local pixels.
func (b Bounds) Local(client Point) Point {
	w, h := b.size()
	return Point{
		X: (client.X - b.Left) * Width / w,
		Y: (client.Y - b.Top) * Height / h,
	}
}

func (b Bounds) size() (float64, float64) {
	w, h := b.Width, b.Height
	if w <= 0 {
		w = Width
	}
	if h <= 0 {
		h = Height
	}
	return w, h
}

// Pad is the signature capture modal: Closed → Open(empty) → Open(dirty) →
// Closed. Whether anything was signed is tracked by stroke operations only;
// the guide line never counts as content. A Pad is not safe for concurrent
// use.
type Pad struct {
	surface *Surface
	bounds  Bounds
	clock   func() time.Time

	onSubmit func(Artifact)
	onClose  func()

	open       bool
	drawing    bool
	hasContent bool
	last       Point
	segments   int
	message    string
}

// Option customizes Pad construction.
type Option func(*Pad)

// WithSubmit registers the callback that receives submitted artifacts.
func WithSubmit(fn func(Artifact)) Option {
	return func(p *Pad) {
		if fn != nil {
			p.onSubmit = fn
		}
	}
}

// WithClose registers the callback fired whenever the pad closes.
func WithClose(fn func()) Option {
	return func(p *Pad) {
		if fn != nil {
			p.onClose = fn
		}
	}
}

// WithBounds sets the on-screen rectangle used to translate client points.
func WithBounds(b Bounds) Option {
	return func(p *Pad) {
		p.bounds = b
	}
}

// WithClock allows tests to control capture timestamps.
func WithClock(clock func() time.Time) Option {
	return func(p *Pad) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// NewPad returns a closed pad.
func NewPad(opts ...Option) *Pad {
	p := &Pad{
		surface: NewSurface(),
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Open shows the pad with a fresh surface. Opening an open pad is a no-op.
func (p *Pad) Open() {
	if p.open {
		return
	}
	p.reset()
	p.open = true
}

// IsOpen reports modal visibility.
func (p *Pad) IsOpen() bool { return p.open }

// Drawing reports whether a stroke is active.
func (p *Pad) Drawing() bool { return p.drawing }

// HasContent reports whether the user has drawn at least one segment.
func (p *Pad) HasContent() bool { return p.hasContent }

// Message returns the user-visible error, if any.
func (p *Pad) Message() string { return p.message }

// Bounds returns the current client rectangle.
func (p *Pad) Bounds() Bounds { return p.bounds }

// SetBounds updates the client rectangle, e.g. after a terminal resize.
func (p *Pad) SetBounds(b Bounds) { p.bounds = b }

// Surface exposes the bitmap for previews.
func (p *Pad) Surface() *Surface { return p.surface }

// BeginStroke starts a new path at the client point.
func (p *Pad) BeginStroke(client Point) {
	if !p.open {
		return
	}
	p.drawing = true
	p.segments = 0
	p.last = p.bounds.Local(client)
}

// ExtendStroke continues the active path to the client point.
func (p *Pad) ExtendStroke(client Point) {
	if !p.open || !p.drawing {
		return
	}
	next := p.bounds.Local(client)
	p.surface.StrokeSegment(p.last, next, p.segments == 0)
	p.segments++
	p.last = next
	p.hasContent = true
}

// EndStroke deactivates the current path.
func (p *Pad) EndStroke() {
	p.drawing = false
}

// Clear erases all strokes and any error message.
func (p *Pad) Clear() {
	p.reset()
}

// Submit serializes the surface and hands it to the submit callback, then
// clears and closes the pad. Without content it records EmptyMessage, stays
// open and returns ErrEmptySignature.
func (p *Pad) Submit() (Artifact, error) {
	if !p.open {
		return Artifact{}, nil
	}
	if !p.hasContent {
		p.message = EmptyMessage
		return Artifact{}, ErrEmptySignature
	}
	data, err := p.surface.Encode()
	if err != nil {
		p.message = err.Error()
		return Artifact{}, err
	}
	artifact := Artifact{
		PNG:        data,
		Width:      Width,
		Height:     Height,
		CapturedAt: p.clock(),
	}
	if p.onSubmit != nil {
		p.onSubmit(artifact)
	}
	p.reset()
	p.close()
	return artifact, nil
}

// Cancel closes the pad and discards whatever was drawn.
func (p *Pad) Cancel() {
	if !p.open {
		return
	}
	p.reset()
	p.close()
}

func (p *Pad) reset() {
	p.surface.Reset()
	p.drawing = false
	p.hasContent = false
	p.segments = 0
	p.message = ""
}

func (p *Pad) close() {
	p.open = false
	if p.onClose != nil {
		p.onClose()
	}
}
