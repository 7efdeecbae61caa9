package gpu

import "github.com/go-gl/gl/v4.6-core/gl"

// AttachmentType is the framebuffer attachment point a render buffer serves.
type AttachmentType uint32

const (
	DepthAttachment        AttachmentType = gl.DEPTH_ATTACHMENT
	StencilAttachment      AttachmentType = gl.STENCIL_ATTACHMENT
	DepthStencilAttachment AttachmentType = gl.DEPTH_STENCIL_ATTACHMENT
)

func (t AttachmentType) internalFormat() uint32 {
	switch t {
	case DepthAttachment:
		return gl.DEPTH_COMPONENT24
	case StencilAttachment:
		return gl.STENCIL_INDEX8
	default:
		return gl.DEPTH24_STENCIL8
	}
}

type RenderBuffer struct {
	id      uint32
	res     Resolution
	typ     AttachmentType
	samples TexSamples
}

func NewRenderBuffer(res Resolution, typ AttachmentType, samples TexSamples) *RenderBuffer {
	r := &RenderBuffer{res: res, typ: typ, samples: samples}

	gl.GenRenderbuffers(1, &r.id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.id)
	if samples > MSAAx1 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(samples), typ.internalFormat(), res.Width, res.Height)
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, typ.internalFormat(), res.Width, res.Height)
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return r
}

func (r *RenderBuffer) ID() uint32 {
	return r.id
}

func (r *RenderBuffer) Resolution() Resolution {
	return r.res
}

func (r *RenderBuffer) Type() AttachmentType {
	return r.typ
}

func (r *RenderBuffer) Samples() TexSamples {
	return r.samples
}

func (r *RenderBuffer) Bind() {
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.id)
}

func (r *RenderBuffer) Unbind() {
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (r *RenderBuffer) Delete() {
	if r.id == 0 {
		return
	}
	gl.DeleteRenderbuffers(1, &r.id)
	r.id = 0
}

func (r *RenderBuffer) Move() *RenderBuffer {
	moved := *r
	r.id = 0
	return &moved
}
