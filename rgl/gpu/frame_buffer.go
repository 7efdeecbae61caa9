package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// FramebufferAttachment selects the render buffer a FrameBuffer owns.
type FramebufferAttachment uint8

const (
	AttachNone FramebufferAttachment = iota
	AttachDepth
	AttachStencil
	AttachDepthStencil
)

func (a FramebufferAttachment) renderBufferType() (AttachmentType, bool) {
	switch a {
	case AttachDepth:
		return DepthAttachment, true
	case AttachStencil:
		return StencilAttachment, true
	case AttachDepthStencil:
		return DepthStencilAttachment, true
	}
	return 0, false
}

// FrameBuffer owns its render buffer but only references attached textures,
// which must outlive it.
type FrameBuffer struct {
	id           uint32
	attachment   FramebufferAttachment
	renderBuffer *RenderBuffer
}

func NewFrameBuffer() *FrameBuffer {
	f := &FrameBuffer{}
	gl.GenFramebuffers(1, &f.id)
	return f
}

func (f *FrameBuffer) ID() uint32 {
	return f.id
}

func (f *FrameBuffer) Attachment() FramebufferAttachment {
	return f.attachment
}

func (f *FrameBuffer) RenderBuffer() *RenderBuffer {
	return f.renderBuffer
}

func (f *FrameBuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
}

func (f *FrameBuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// SetRenderBuffer replaces the owned render buffer. AttachNone detaches and
// deletes the current one. The framebuffer must be bound.
func (f *FrameBuffer) SetRenderBuffer(res Resolution, attachment FramebufferAttachment, samples TexSamples) {
	if typ, ok := f.attachment.renderBufferType(); ok {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, uint32(typ), gl.RENDERBUFFER, 0)
	}
	if f.renderBuffer != nil {
		f.renderBuffer.Delete()
		f.renderBuffer = nil
	}
	f.attachment = AttachNone

	typ, ok := attachment.renderBufferType()
	if !ok {
		return
	}
	f.attachment = attachment
	f.renderBuffer = NewRenderBuffer(res, typ, samples)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, uint32(typ), gl.RENDERBUFFER, f.renderBuffer.ID())
}

// SetTexture attaches tex as color attachment index. The framebuffer must be
// bound.
func (f *FrameBuffer) SetTexture(tex *Texture2D, index uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+index, tex.Target(), tex.ID(), 0)
}

// CheckComplete returns ErrIncompleteFramebuffer with the GL status when the
// bound framebuffer cannot be rendered to.
func (f *FrameBuffer) CheckComplete() error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: status 0x%x", ErrIncompleteFramebuffer, status)
	}
	return nil
}

func (f *FrameBuffer) IsComplete() bool {
	return f.CheckComplete() == nil
}

func (f *FrameBuffer) Delete() {
	if f.id == 0 {
		return
	}
	if f.renderBuffer != nil {
		f.renderBuffer.Delete()
	}
	gl.DeleteFramebuffers(1, &f.id)
	*f = FrameBuffer{}
}

func (f *FrameBuffer) Move() *FrameBuffer {
	moved := *f
	*f = FrameBuffer{}
	return &moved
}

// SetViewport resizes the GL viewport without touching any attachment.
func SetViewport(res Resolution) {
	gl.Viewport(0, 0, res.Width, res.Height)
}

func BindDefaultFrameBuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// TransferData blits the color contents of src into dst, resolving
// multisampling, and leaves the default framebuffer bound. A nil framebuffer
// means the default one.
func TransferData(src, dst *FrameBuffer, res Resolution) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, src.idOrDefault())
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst.idOrDefault())
	gl.BlitFramebuffer(0, 0, res.Width, res.Height, 0, 0, res.Width, res.Height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (f *FrameBuffer) idOrDefault() uint32 {
	if f == nil {
		return 0
	}
	return f.id
}
