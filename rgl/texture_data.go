package rgl

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureData is tightly packed 8-bit RGBA pixel data ready for upload.
type TextureData struct {
	Pixels []byte
	Width  int
	Height int
}

// DecodeTextureData decodes any registered image format into RGBA. With
// flipY the rows are reversed so the first row is the bottom of the image,
// which is what GL texture coordinates expect.
func DecodeTextureData(r io.Reader, flipY bool) (TextureData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return TextureData{}, fmt.Errorf("rgl: decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	data := TextureData{Pixels: rgba.Pix, Width: bounds.Dx(), Height: bounds.Dy()}
	if flipY {
		data.flipRows()
	}

	Log().Debug("decoded texture", "format", format, "width", data.Width, "height", data.Height)
	return data, nil
}

// LoadTextureData decodes the image file at path.
func LoadTextureData(path string, flipY bool) (TextureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return TextureData{}, fmt.Errorf("rgl: load texture: %w", err)
	}
	defer f.Close()

	data, err := DecodeTextureData(f, flipY)
	if err != nil {
		return TextureData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func (d *TextureData) flipRows() {
	stride := d.Width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, d.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := d.Pixels[top*stride : (top+1)*stride]
		b := d.Pixels[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
