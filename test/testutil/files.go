package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// GeneratePNG encodes a plain white image.
func GeneratePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

// GenerateMP3 returns an ID3-tagged payload of n bytes. It is not playable
// audio, only bytes with a recognisable header.
func GenerateMP3(n int) []byte {
	header := []byte("ID3\x04\x00\x00\x00\x00\x00\x00")
	if n < len(header) {
		n = len(header)
	}
	out := make([]byte, n)
	copy(out, header)
	for i := len(header); i < n; i++ {
		out[i] = byte(i % 251)
	}
	return out
}
