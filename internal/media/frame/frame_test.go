package frame

import (
	"image/color"
	"testing"
)

func TestNewBufferEnforcesSize(t *testing.T) {
	if _, err := NewBuffer(2, 2, make([]byte, 12)); err != nil {
		t.Fatalf("exact-size buffer rejected: %v", err)
	}
	if _, err := NewBuffer(2, 2, make([]byte, 11)); err == nil {
		t.Fatal("short pixel slice must be rejected")
	}
	if _, err := NewBuffer(2, 2, make([]byte, 13)); err == nil {
		t.Fatal("oversized pixel slice must be rejected")
	}
	if _, err := NewBuffer(0, 2, nil); err == nil {
		t.Fatal("zero width must be rejected")
	}
}

func TestBufferImage(t *testing.T) {
	pix := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 9, 9, 9,
	}
	buf, err := NewBuffer(2, 2, pix)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	bounds := buf.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", bounds)
	}
	got := buf.At(1, 1)
	want := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	if got != want {
		t.Fatalf("At(1,1) = %v, want %v", got, want)
	}
	if buf.At(5, 5) != (color.RGBA{}) {
		t.Fatalf("out-of-bounds access should be zero, got %v", buf.At(5, 5))
	}
}
