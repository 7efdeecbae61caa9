package dearimgui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// hostWindow is the fullscreen window every frame's UI is built inside.
const hostWindow = "DockSpace"

// The host window fills the main viewport, never takes focus and leaves its
// center transparent so the scene drawn before the UI stays visible.
const hostFlags = imgui.WindowFlagsNoDocking |
	imgui.WindowFlagsNoTitleBar |
	imgui.WindowFlagsNoCollapse |
	imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoMove |
	imgui.WindowFlagsNoBringToFrontOnFocus |
	imgui.WindowFlagsNoNavFocus |
	imgui.WindowFlagsNoBackground

type imguiDriver struct {
	ctx      *imgui.Context
	platform *platform
	renderer *renderer
}

func newImguiDriver(window *glfw.Window) (*imguiDriver, error) {
	ctx := imgui.CreateContext()
	io := imgui.CurrentIO()
	io.SetConfigFlags(io.ConfigFlags() | imgui.ConfigFlagsDockingEnable)
	imgui.StyleColorsDark()

	r, err := newRenderer(io)
	if err != nil {
		imgui.DestroyContext()
		return nil, err
	}
	return &imguiDriver{
		ctx:      ctx,
		platform: newPlatform(window, io),
		renderer: r,
	}, nil
}

func (d *imguiDriver) newFrame() {
	d.platform.newFrame()
	imgui.NewFrame()
}

func (d *imguiDriver) beginHost() {
	vp := imgui.MainViewport()
	imgui.SetNextWindowPos(vp.WorkPos())
	imgui.SetNextWindowSize(vp.WorkSize())
	imgui.SetNextWindowViewport(vp.ID())

	imgui.PushStyleVarFloat(imgui.StyleVarWindowRounding, 0)
	imgui.PushStyleVarFloat(imgui.StyleVarWindowBorderSize, 0)
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.Vec2{})
	// End must follow even when the window is collapsed
	imgui.BeginV(hostWindow, nil, hostFlags)
	imgui.PopStyleVarV(3)

	imgui.DockSpaceV(imgui.IDStr(hostWindow), imgui.Vec2{}, imgui.DockNodeFlagsPassthruCentralNode, nil)
}

func (d *imguiDriver) endHost() {
	imgui.End()
}

func (d *imguiDriver) render() {
	imgui.Render()
	d.renderer.draw(imgui.CurrentDrawData(), d.platform.framebufferScale())
}

func (d *imguiDriver) wantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

func (d *imguiDriver) shutdown() {
	d.renderer.delete()
	d.platform.restore()
	imgui.DestroyContextV(d.ctx)
}
