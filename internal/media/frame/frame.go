package frame

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// BytesPerPixel is the packed RGB layout emitted by the decoder.
const BytesPerPixel = 3

// Buffer is an owned 2-D RGB pixel array with a row stride of
// Width*BytesPerPixel. It implements image.Image so frames can be handed
// directly to the standard encoders.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// NewBuffer wraps pix as a width x height RGB buffer. The pixel slice must
// hold exactly width*height*BytesPerPixel bytes; a mismatch is an internal
// invariant violation and is reported rather than truncated or padded.
func NewBuffer(width, height int, pix []byte) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame buffer: invalid geometry %dx%d", width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) != want {
		return nil, fmt.Errorf("frame buffer: %d pixel bytes, want %d", len(pix), want)
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// Width returns the frame width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the frame height in pixels.
func (b *Buffer) Height() int { return b.height }

// Pix returns the packed RGB bytes backing the buffer.
func (b *Buffer) Pix() []byte { return b.pix }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.RGBA{}
	}
	offset := (y*b.width + x) * BytesPerPixel
	return color.RGBA{R: b.pix[offset], G: b.pix[offset+1], B: b.pix[offset+2], A: 0xFF}
}

var _ image.Image = (*Buffer)(nil)

// Frame is one decoded picture. Ownership transfers fully to the consumer;
// the pipeline keeps no reference after yielding it.
type Frame struct {
	Image *Buffer
	// TimeOffset is the presentation offset reported by the decoder. It may
	// differ from the true wall-clock position in the source.
	TimeOffset time.Duration
}
