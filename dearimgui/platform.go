package dearimgui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// platform feeds GLFW input and timing into ImGui. Scroll, key and character
// input arrive through callbacks chained in front of any the window already
// had; mouse position and buttons are polled each frame.
type platform struct {
	window   *glfw.Window
	io       *imgui.IO
	lastTime float64

	prevScroll glfw.ScrollCallback
	prevKey    glfw.KeyCallback
	prevChar   glfw.CharCallback
}

var imguiKeys = map[glfw.Key]imgui.Key{
	glfw.KeyTab:          imgui.KeyTab,
	glfw.KeyLeft:         imgui.KeyLeftArrow,
	glfw.KeyRight:        imgui.KeyRightArrow,
	glfw.KeyUp:           imgui.KeyUpArrow,
	glfw.KeyDown:         imgui.KeyDownArrow,
	glfw.KeyPageUp:       imgui.KeyPageUp,
	glfw.KeyPageDown:     imgui.KeyPageDown,
	glfw.KeyHome:         imgui.KeyHome,
	glfw.KeyEnd:          imgui.KeyEnd,
	glfw.KeyInsert:       imgui.KeyInsert,
	glfw.KeyDelete:       imgui.KeyDelete,
	glfw.KeyBackspace:    imgui.KeyBackspace,
	glfw.KeySpace:        imgui.KeySpace,
	glfw.KeyEnter:        imgui.KeyEnter,
	glfw.KeyEscape:       imgui.KeyEscape,
	glfw.KeyLeftControl:  imgui.KeyLeftCtrl,
	glfw.KeyRightControl: imgui.KeyRightCtrl,
	glfw.KeyLeftShift:    imgui.KeyLeftShift,
	glfw.KeyRightShift:   imgui.KeyRightShift,
	glfw.KeyLeftAlt:      imgui.KeyLeftAlt,
	glfw.KeyRightAlt:     imgui.KeyRightAlt,
	glfw.KeyA:            imgui.KeyA,
	glfw.KeyC:            imgui.KeyC,
	glfw.KeyV:            imgui.KeyV,
	glfw.KeyX:            imgui.KeyX,
	glfw.KeyY:            imgui.KeyY,
	glfw.KeyZ:            imgui.KeyZ,
}

var imguiMouseButtons = [...]glfw.MouseButton{
	glfw.MouseButtonLeft,
	glfw.MouseButtonRight,
	glfw.MouseButtonMiddle,
}

func newPlatform(window *glfw.Window, io *imgui.IO) *platform {
	p := &platform{window: window, io: io, lastTime: glfw.GetTime()}

	p.prevScroll = window.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelEvent(float32(x), float32(y))
		if p.prevScroll != nil {
			p.prevScroll(w, x, y)
		}
	})
	p.prevKey = window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if k, ok := imguiKeys[key]; ok {
			io.AddKeyEvent(k, action != glfw.Release)
		}
		if p.prevKey != nil {
			p.prevKey(w, key, scancode, action, mods)
		}
	})
	p.prevChar = window.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacter(uint32(char))
		if p.prevChar != nil {
			p.prevChar(w, char)
		}
	})
	return p
}

func (p *platform) newFrame() {
	w, h := p.window.GetSize()
	p.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})
	p.io.SetDisplayFramebufferScale(p.framebufferScale())

	now := glfw.GetTime()
	p.io.SetDeltaTime(frameDelta(now, p.lastTime))
	p.lastTime = now

	x, y := p.window.GetCursorPos()
	p.io.AddMousePosEvent(float32(x), float32(y))
	for i, button := range imguiMouseButtons {
		p.io.AddMouseButtonEvent(int32(i), p.window.GetMouseButton(button) == glfw.Press)
	}
}

func (p *platform) framebufferScale() imgui.Vec2 {
	w, h := p.window.GetSize()
	fw, fh := p.window.GetFramebufferSize()
	return framebufferScale(w, h, fw, fh)
}

// restore puts back the callbacks the window had before.
func (p *platform) restore() {
	p.window.SetScrollCallback(p.prevScroll)
	p.window.SetKeyCallback(p.prevKey)
	p.window.SetCharCallback(p.prevChar)
}

// frameDelta is the time since the last frame. ImGui rejects a zero delta,
// which a clock with coarse resolution can produce.
func frameDelta(now, last float64) float32 {
	if dt := float32(now - last); dt > 0 {
		return dt
	}
	return 1.0 / 60
}

// framebufferScale maps window coordinates to framebuffer pixels. A
// minimized window reports a zero size and keeps a scale of one.
func framebufferScale(w, h, fw, fh int) imgui.Vec2 {
	if w <= 0 || h <= 0 {
		return imgui.Vec2{X: 1, Y: 1}
	}
	return imgui.Vec2{X: float32(fw) / float32(w), Y: float32(fh) / float32(h)}
}
