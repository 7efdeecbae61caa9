package jyu

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyu3d/jyu/rgl"
	"github.com/jyu3d/jyu/rgl/gpu"
)

var ErrWindowCreate = errors.New("window creation failed")

// WindowState is the single GLFW window of an App and its GL context.
type WindowState struct {
	window *glfw.Window
	Width  int
	Height int
	Title  string
}

func (ws *WindowState) Handle() *glfw.Window {
	return ws.window
}

func (ws *WindowState) ShouldClose() bool {
	return ws.window.ShouldClose()
}

// Resolution is the framebuffer size in pixels, which differs from the
// window size on high-DPI displays.
func (ws *WindowState) Resolution() gpu.Resolution {
	w, h := ws.window.GetFramebufferSize()
	return gpu.Resolution{Width: int32(w), Height: int32(h)}
}

// PlatformWindowModule opens the window described by the spec, makes its GL
// context current on the main thread and loads the GL functions. Install is
// a no-op when a WindowState already exists.
type PlatformWindowModule struct{}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) error {
	if _, ok := Resource[WindowState](app); ok {
		return nil
	}

	ws, err := createWindowState(app.Spec(), app.Logger())
	if err != nil {
		return err
	}
	app.onShutdown(func() {
		ws.window.Destroy()
		glfw.Terminate()
	})
	cmd.AddResources(ws)

	if t, ok := Resource[Time](app); ok {
		t.SetClock(glfw.GetTime)
	}

	app.UseSystem(System(pollEventsSystem).InStage(Prelude))
	app.UseSystem(System(swapBuffersSystem).InStage(PostRender))
	return nil
}

func createWindowState(spec ApplicationSpec, logger Logger) (*WindowState, error) {
	// GLFW and GL calls must all come from the main thread.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrWindowCreate, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, spec.GL.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, spec.GL.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, spec.Samples)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if spec.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(spec.Width, spec.Height, spec.Name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	win.MakeContextCurrent()
	if spec.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl init: %v", ErrWindowCreate, err)
	}
	logger.Infof("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	if spec.Debug {
		enableGLDebugOutput()
		rgl.SetDebugChecks(true)
	}

	ws := &WindowState{
		window: win,
		Width:  spec.Width,
		Height: spec.Height,
		Title:  spec.Name,
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gpu.SetViewport(gpu.Resolution{Width: int32(width), Height: int32(height)})
	})
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		ws.Width, ws.Height = width, height
	})
	gpu.SetViewport(ws.Resolution())

	return ws, nil
}

func enableGLDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		switch severity {
		case gl.DEBUG_SEVERITY_HIGH:
			rgl.Log().Error(message, "id", id, "type", gltype)
		case gl.DEBUG_SEVERITY_MEDIUM, gl.DEBUG_SEVERITY_LOW:
			rgl.Log().Warn(message, "id", id, "type", gltype)
		default:
			rgl.Log().Debug(message, "id", id)
		}
	}, nil)
}

func pollEventsSystem(ws *WindowState, cmd *Commands) {
	glfw.PollEvents()
	if ws.ShouldClose() {
		cmd.Close()
	}
}

func swapBuffersSystem(ws *WindowState) {
	ws.window.SwapBuffers()
}
