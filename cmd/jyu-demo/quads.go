package main

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jyu3d/jyu"
	"github.com/jyu3d/jyu/dearimgui"
	"github.com/jyu3d/jyu/rgl"
	"github.com/jyu3d/jyu/rgl/gpu"
)

//go:embed shaders/quad.glsl
var quadShader string

type quadInstance struct {
	Offset mgl32.Vec2 `rgl:"vec2"`
	Color  mgl32.Vec4 `rgl:"vec4"`
	Scale  float32    `rgl:"f32"`
}

var quadVertices = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// quadLayer draws one instanced quad per click. Left click adds a quad under
// the cursor, right click removes the oldest one, R clears, Escape quits.
type quadLayer struct {
	jyu.BaseLayer

	app    *jyu.App
	input  *jyu.Input
	window *jyu.WindowState
	stats  *jyu.FrameStats
	ui     *dearimgui.Backend

	program *gpu.ShaderProgram
	va      *gpu.VertexArray

	titleTimer float32
}

func newQuadLayer(app *jyu.App, shaderPath string) (*quadLayer, error) {
	l := &quadLayer{app: app}
	var ok bool
	if l.input, ok = jyu.Resource[jyu.Input](app); !ok {
		return nil, fmt.Errorf("quad layer needs the input module")
	}
	if l.window, ok = jyu.Resource[jyu.WindowState](app); !ok {
		return nil, fmt.Errorf("quad layer needs a window")
	}
	l.stats, _ = jyu.Resource[jyu.FrameStats](app)
	l.ui, _ = jyu.Resource[dearimgui.Backend](app)

	program, err := loadQuadProgram(shaderPath)
	if err != nil {
		return nil, err
	}
	l.program = program
	if shaderPath != "" {
		if w, ok := jyu.Resource[jyu.ShaderWatcher](app); ok {
			if err := w.WatchProgram(program); err != nil {
				app.Logger().Warnf("hot reload disabled: %v", err)
			}
		}
	}

	instanceLayout, err := rgl.LayoutFromStruct(quadInstance{})
	if err != nil {
		program.Delete()
		return nil, err
	}
	instances, err := gpu.NewVertexBufferInst(nil, instanceLayout)
	if err != nil {
		program.Delete()
		return nil, err
	}

	l.va = gpu.NewVertexArray()
	l.va.AddVertexBuffer(gpu.NewVertexBuffer(quadVertices, rgl.NewVertexBufferLayout(rgl.Attr(rgl.Vec2, "a_Position")), gpu.StaticDraw))
	l.va.SetInstanceBuffer(instances)
	l.va.SetIndexBuffer(gpu.NewIndexBuffer(quadIndices))
	return l, nil
}

func loadQuadProgram(path string) (*gpu.ShaderProgram, error) {
	if path != "" {
		return gpu.NewShaderProgram(path)
	}
	stages, err := rgl.ParseShaderSources(quadShader)
	if err != nil {
		return nil, err
	}
	return gpu.NewShaderProgramFromSources("quad", stages...)
}

func (l *quadLayer) OnStart() {
	l.app.Logger().Infof("click to add quads, right click to remove, R to clear")
}

func (l *quadLayer) OnDestroy() {
	l.va.Delete()
	l.program.Delete()
}

func (l *quadLayer) OnUpdate(dt float32) {
	overUI := l.ui != nil && l.ui.WantCaptureMouse()
	switch {
	case l.input.JustPressed(jyu.KeyEscape):
		l.app.Close()
	case l.input.JustPressed(jyu.KeyR):
		l.clear()
	case !overUI && l.input.MouseButtonJustPressed(jyu.MouseButtonLeft):
		l.spawn(l.input.MousePosition())
	case !overUI && l.input.MouseButtonJustPressed(jyu.MouseButtonRight):
		l.va.InstanceBuffer().DeleteInstance(0)
	}

	gpu.Clear(mgl32.Vec4{0.08, 0.08, 0.1, 1})
	l.program.Bind()
	l.program.SetUniformMat4f("u_Projection", mgl32.Ortho2D(0, float32(l.window.Width), float32(l.window.Height), 0))
	l.program.SetUniform1f("u_Time", float32(l.app.GetTime()))
	gpu.DrawIndexedInstanced(l.va)

	l.titleTimer += dt
	if l.stats != nil && l.titleTimer >= 1 {
		l.titleTimer = 0
		l.window.Handle().SetTitle(fmt.Sprintf("%s | %d quads | %.0f fps (%.2f ms)",
			l.window.Title, l.va.InstanceBuffer().InstanceCount(), l.stats.FPS(), l.stats.AverageFrameMS()))
	}
}

func (l *quadLayer) OnUIUpdate() {
	if l.ui == nil {
		return
	}
	inst := l.va.InstanceBuffer()
	imgui.Begin("Quads")
	imgui.Text(fmt.Sprintf("%d quads, %d bytes reserved", inst.InstanceCount(), inst.Capacity()))
	if l.stats != nil {
		imgui.Text(fmt.Sprintf("%.0f fps (%.2f ms)", l.stats.FPS(), l.stats.AverageFrameMS()))
	}
	if imgui.Button("Clear") {
		l.clear()
	}
	imgui.End()
}

func (l *quadLayer) spawn(at mgl32.Vec2) {
	inst := l.va.InstanceBuffer()
	q := quadInstance{
		Offset: at,
		Color:  mgl32.Vec4{rand.Float32(), rand.Float32(), rand.Float32(), 1},
		Scale:  16 + rand.Float32()*48,
	}

	capacity := inst.Capacity()
	if err := inst.AddInstance(rgl.StructBytes(&q)); err != nil {
		l.app.Logger().Errorf("add quad: %v", err)
		return
	}
	if inst.Capacity() != capacity {
		l.va.AttachInstanceBuffer()
	}
}

func (l *quadLayer) clear() {
	inst := l.va.InstanceBuffer()
	for inst.InstanceCount() > 0 {
		inst.DeleteInstance(inst.InstanceCount() - 1)
	}
}
