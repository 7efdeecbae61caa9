package gpu

import "github.com/go-gl/gl/v4.6-core/gl"

// CubeMap is a six-faced texture. Faces are ordered +X, -X, +Y, -Y, +Z, -Z.
type CubeMap struct {
	id     uint32
	res    Resolution
	color  TextureColor
	filter TextureFilter
}

func NewCubeMap(faces [6][]byte, res Resolution, color TextureColor, filter TextureFilter, mipmap bool) *CubeMap {
	c := &CubeMap{res: res, color: color, filter: filter}

	gl.GenTextures(1, &c.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)

	gl.TextureParameteri(c.id, gl.TEXTURE_WRAP_S, filter.Clamping)
	gl.TextureParameteri(c.id, gl.TEXTURE_WRAP_T, filter.Clamping)
	gl.TextureParameteri(c.id, gl.TEXTURE_WRAP_R, filter.Clamping)

	minFilter := filter.MinFilter
	if mipmap {
		minFilter = toMipmap(minFilter)
	}
	gl.TextureParameteri(c.id, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TextureParameteri(c.id, gl.TEXTURE_MAG_FILTER, filter.MagFilter)

	for i, face := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, color.InternalFormat,
			res.Width, res.Height, 0, color.Format, color.DataType, pixelPtr(face))
	}

	if mipmap {
		gl.GenerateTextureMipmap(c.id)
	}
	return c
}

func (c *CubeMap) ID() uint32 {
	return c.id
}

func (c *CubeMap) Resolution() Resolution {
	return c.res
}

func (c *CubeMap) Color() TextureColor {
	return c.color
}

func (c *CubeMap) Bind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.id)
}

func (c *CubeMap) Unbind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

func (c *CubeMap) SetUnit(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	c.Bind()
}

func (c *CubeMap) Delete() {
	if c.id == 0 {
		return
	}
	gl.DeleteTextures(1, &c.id)
	c.id = 0
}

func (c *CubeMap) Move() *CubeMap {
	moved := *c
	c.id = 0
	return &moved
}
