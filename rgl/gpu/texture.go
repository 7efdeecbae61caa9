package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/jyu3d/jyu/rgl"
)

// TextureColor is the storage and upload format of a texture.
type TextureColor struct {
	InternalFormat int32
	Format         uint32
	DataType       uint32
}

// TextureFilter is the sampling state of a texture.
type TextureFilter struct {
	MinFilter int32
	MagFilter int32
	Clamping  int32
}

var (
	ColorRGBA8   = TextureColor{InternalFormat: gl.RGBA8, Format: gl.RGBA, DataType: gl.UNSIGNED_BYTE}
	ColorRGBA16F = TextureColor{InternalFormat: gl.RGBA16F, Format: gl.RGBA, DataType: gl.FLOAT}

	FilterLinear  = TextureFilter{MinFilter: gl.LINEAR, MagFilter: gl.LINEAR, Clamping: gl.CLAMP_TO_EDGE}
	FilterNearest = TextureFilter{MinFilter: gl.NEAREST, MagFilter: gl.NEAREST, Clamping: gl.CLAMP_TO_EDGE}
)

// toMipmap maps a filter to its mipmapped counterpart, or 0 if it has none.
func toMipmap(filter int32) int32 {
	switch filter {
	case gl.NEAREST, gl.NEAREST_MIPMAP_NEAREST:
		return gl.NEAREST_MIPMAP_NEAREST
	case gl.LINEAR, gl.LINEAR_MIPMAP_LINEAR:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return 0
}

func textureTarget(samples TexSamples) uint32 {
	if samples <= MSAAx1 {
		return gl.TEXTURE_2D
	}
	return gl.TEXTURE_2D_MULTISAMPLE
}

// Texture2D is a 2D or multisampled 2D texture. Multisampled textures have no
// client data and are meant as framebuffer attachments.
type Texture2D struct {
	id      uint32
	unit    uint32
	target  uint32
	res     Resolution
	color   TextureColor
	filter  TextureFilter
	samples TexSamples
}

// NewTexture2D creates a texture from raw pixel data, which may be nil. data
// is read according to color.Format and color.DataType.
func NewTexture2D(data []byte, res Resolution, color TextureColor, filter TextureFilter, samples TexSamples, mipmap bool) *Texture2D {
	if samples < MSAAx1 {
		samples = MSAAx1
	}
	t := &Texture2D{
		target:  textureTarget(samples),
		res:     res,
		color:   color,
		filter:  filter,
		samples: samples,
	}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(t.target, t.id)

	if t.target == gl.TEXTURE_2D {
		minFilter := filter.MinFilter
		if mipmap {
			minFilter = toMipmap(minFilter)
		}
		gl.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, minFilter)
		gl.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, filter.MagFilter)
		gl.TexParameteri(t.target, gl.TEXTURE_WRAP_S, filter.Clamping)
		gl.TexParameteri(t.target, gl.TEXTURE_WRAP_T, filter.Clamping)
		gl.TexImage2D(t.target, 0, color.InternalFormat, res.Width, res.Height, 0, color.Format, color.DataType, pixelPtr(data))
		if mipmap {
			gl.GenerateMipmap(t.target)
		}
	} else {
		gl.TexImage2DMultisample(t.target, int32(samples), uint32(color.InternalFormat), res.Width, res.Height, true)
	}

	gl.BindTexture(t.target, 0)
	return t
}

// NewTexture2DFromFile loads an image file as an RGBA8 texture, flipped so
// that UV (0,0) is the bottom-left corner.
func NewTexture2DFromFile(path string, filter TextureFilter, mipmap bool) (*Texture2D, error) {
	data, err := rgl.LoadTextureData(path, true)
	if err != nil {
		return nil, err
	}
	res := Resolution{Width: int32(data.Width), Height: int32(data.Height)}
	return NewTexture2D(data.Pixels, res, ColorRGBA8, filter, MSAAx1, mipmap), nil
}

func (t *Texture2D) ID() uint32 {
	return t.id
}

// Target is TEXTURE_2D or TEXTURE_2D_MULTISAMPLE.
func (t *Texture2D) Target() uint32 {
	return t.target
}

func (t *Texture2D) Unit() uint32 {
	return t.unit
}

func (t *Texture2D) Resolution() Resolution {
	return t.res
}

func (t *Texture2D) Color() TextureColor {
	return t.color
}

func (t *Texture2D) Filter() TextureFilter {
	return t.filter
}

func (t *Texture2D) Samples() TexSamples {
	return t.samples
}

func (t *Texture2D) Bind() {
	gl.BindTexture(t.target, t.id)
}

func (t *Texture2D) Unbind() {
	gl.BindTexture(t.target, 0)
}

// SetUnit activates texture unit TEXTURE0+unit and binds t to it.
func (t *Texture2D) SetUnit(unit uint32) {
	t.unit = unit
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	t.Bind()
}

// SetData respecifies the image. It does nothing for multisampled textures.
func (t *Texture2D) SetData(data []byte, res Resolution, color TextureColor, mipmap bool) {
	if t.target == gl.TEXTURE_2D_MULTISAMPLE {
		return
	}
	t.color = color
	t.res = res

	t.Bind()
	gl.TexImage2D(t.target, 0, color.InternalFormat, res.Width, res.Height, 0, color.Format, color.DataType, pixelPtr(data))
	if mipmap {
		gl.GenerateMipmap(t.target)
	}
}

func (t *Texture2D) Delete() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

func (t *Texture2D) Move() *Texture2D {
	moved := *t
	t.id = 0
	return &moved
}

func pixelPtr(data []byte) unsafe.Pointer {
	return ptrOrNil(data)
}
