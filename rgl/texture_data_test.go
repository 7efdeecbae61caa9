package rgl

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTwoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	for x := 0; x < 2; x++ {
		img.Set(x, 0, red)
		img.Set(x, 1, blue)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeTextureData(t *testing.T) {
	data, err := DecodeTextureData(bytes.NewReader(encodeTwoRowPNG(t)), false)
	require.NoError(t, err)

	assert.Equal(t, 2, data.Width)
	assert.Equal(t, 2, data.Height)
	require.Len(t, data.Pixels, 2*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[8:12])
}

func TestDecodeTextureData_FlipY(t *testing.T) {
	data, err := DecodeTextureData(bytes.NewReader(encodeTwoRowPNG(t)), true)
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[8:12])
}

func TestDecodeTextureData_Garbage(t *testing.T) {
	_, err := DecodeTextureData(bytes.NewReader([]byte("not an image")), false)
	assert.Error(t, err)
}
