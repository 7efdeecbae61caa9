// Package dearimgui is a jyu.UIBackend built on Dear ImGui through cimgui-go.
// It drives ImGui from the App's GLFW window and draws with the go-gl
// bindings, so it shares the window and GL context the App already owns.
package dearimgui

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyu3d/jyu"
)

// driver is the part of a Backend that talks to ImGui and GL.
type driver interface {
	newFrame()
	beginHost()
	endHost()
	render()
	wantCaptureMouse() bool
	shutdown()
}

// Backend opens a fullscreen host window in NewFrame, so windows the layers
// create in OnUIUpdate can dock into it, and closes and draws it in Render.
type Backend struct {
	d driver
}

var _ jyu.UIBackend = (*Backend)(nil)

// New creates the ImGui context for window. window's GL context must be
// current.
func New(window *glfw.Window) (*Backend, error) {
	if window == nil {
		return nil, fmt.Errorf("dearimgui: nil window")
	}
	d, err := newImguiDriver(window)
	if err != nil {
		return nil, fmt.Errorf("dearimgui: %w", err)
	}
	return &Backend{d: d}, nil
}

func (b *Backend) NewFrame() {
	b.d.newFrame()
	b.d.beginHost()
}

func (b *Backend) Render() {
	b.d.endHost()
	b.d.render()
}

func (b *Backend) Shutdown() {
	b.d.shutdown()
}

// WantCaptureMouse reports whether the mouse is over an ImGui window, in
// which case layers should ignore clicks.
func (b *Backend) WantCaptureMouse() bool {
	return b.d.wantCaptureMouse()
}

// Module installs a Backend for the App's window as its UI backend and adds
// it as a resource. It must come after jyu.PlatformWindowModule.
type Module struct{}

func (Module) Install(app *jyu.App, cmd *jyu.Commands) error {
	ws, ok := jyu.Resource[jyu.WindowState](app)
	if !ok {
		return fmt.Errorf("dearimgui: needs the platform window module")
	}
	b, err := New(ws.Handle())
	if err != nil {
		return err
	}
	cmd.AddResources(b)
	return jyu.UIModule{Backend: b}.Install(app, cmd)
}
