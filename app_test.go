package jyu

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

// countingLayer records hook calls and closes the app after maxUpdates.
type countingLayer struct {
	BaseLayer
	app        *App
	maxUpdates int

	started, destroyed, updates, uiUpdates int
	steps                                  []float32
	events                                 *[]string
	name                                   string
}

func (l *countingLayer) OnStart() {
	l.started++
	l.record("start")
}

func (l *countingLayer) OnDestroy() {
	l.destroyed++
	l.record("destroy")
}

func (l *countingLayer) OnUpdate(dt float32) {
	l.updates++
	l.steps = append(l.steps, dt)
	l.record("update")
	if l.maxUpdates > 0 && l.updates >= l.maxUpdates {
		l.app.Close()
	}
}

func (l *countingLayer) OnUIUpdate() {
	l.uiUpdates++
	l.record("ui")
}

func (l *countingLayer) record(event string) {
	if l.events != nil {
		*l.events = append(*l.events, l.name+":"+event)
	}
}

func newTestApp(t *testing.T, modules ...Module) *App {
	t.Helper()
	app, err := NewApplicationBuilder(DefaultSpec()).UseModule(modules...).Build()
	require.NoError(t, err)
	return app
}

func TestApp_addResources(t *testing.T) {
	// Test setup
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	// Add a resource
	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1) // Try adding resource1 again, should panic
	})

	// Add a resource
	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)

	assert.Panics(t, func() { app.addResources(MockResource1{}) }, "non-pointer resources are rejected")
}

func TestApp_RunUntilClose(t *testing.T) {
	app := newTestApp(t)
	layer := &countingLayer{app: app, maxUpdates: 3}
	app.PushLayer(layer)

	require.NoError(t, app.Run())

	assert.Equal(t, 1, layer.started)
	assert.Equal(t, 3, layer.updates)
	assert.Equal(t, 3, layer.uiUpdates, "the frame that closes still renders its UI")
	assert.Equal(t, 1, layer.destroyed, "layers are destroyed when Run returns")
	assert.Equal(t, 0, app.Layers().Len())
}

func TestApp_StepIsClamped(t *testing.T) {
	app := newTestApp(t)
	clock := 0.0
	tm, ok := Resource[Time](app)
	require.True(t, ok)
	tm.SetClock(func() float64 {
		clock += 0.5
		return clock
	})

	layer := &countingLayer{app: app, maxUpdates: 3}
	app.PushLayer(layer)
	require.NoError(t, app.Run())

	// first frame has no previous tick yet
	assert.Equal(t, float32(0), layer.steps[0])
	assert.Equal(t, MaxTimeStep, layer.steps[1])
	assert.Equal(t, MaxTimeStep, layer.steps[2])
	assert.InDelta(t, 0.5, tm.FrameTime, 1e-6)
	assert.Equal(t, uint64(3), tm.Frame)
}

func TestApp_FrameOrder(t *testing.T) {
	var events []string
	app := newTestApp(t)
	app.UseSystem(System(func() { events = append(events, "prelude") }).InStage(Prelude))
	app.UseSystem(System(func() { events = append(events, "finale") }).InStage(Finale))

	bottom := &countingLayer{app: app, name: "bottom", events: &events}
	top := &countingLayer{app: app, name: "top", events: &events, maxUpdates: 1}
	app.PushLayer(bottom)
	app.PushLayer(top)
	events = nil

	require.NoError(t, app.Run())

	assert.Equal(t, []string{
		"prelude",
		"bottom:update", "top:update",
		"bottom:ui", "top:ui",
		"finale",
		"top:destroy", "bottom:destroy",
	}, events)
}

func TestApp_PopLayer(t *testing.T) {
	app := newTestApp(t)
	a := &countingLayer{app: app}
	b := &countingLayer{app: app}

	idA := app.PushLayer(a)
	idB := app.PushLayer(b)
	assert.NotEqual(t, idA, idB)

	assert.True(t, app.PopLayer(idA))
	assert.Equal(t, 1, a.destroyed)
	assert.False(t, app.PopLayer(idA), "popping twice is reported")
	assert.Equal(t, []Layer{b}, app.Layers().Layers())
}

func TestApp_SystemErrorsAreLogged(t *testing.T) {
	app := newTestApp(t)
	calls := 0
	app.UseSystem(System(func(cmd *Commands) error {
		calls++
		cmd.Close()
		return errors.New("boom")
	}))

	require.NoError(t, app.Run())
	assert.Equal(t, 1, calls)
}

func TestApp_ShutdownOrder(t *testing.T) {
	app := newTestApp(t)
	var order []string
	app.onShutdown(func() { order = append(order, "first") })
	app.onShutdown(func() { order = append(order, "second") })
	app.UseSystem(System(func(cmd *Commands) { cmd.Close() }))

	require.NoError(t, app.Run())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestApp_GetTime(t *testing.T) {
	app := newTestApp(t)
	tm, _ := Resource[Time](app)
	tm.SetClock(func() float64 { return 42 })

	assert.Equal(t, 42.0, app.GetTime())
}

func TestApp_UseStage(t *testing.T) {
	app := newTestApp(t)
	custom := Stage{Name: "Physics"}
	app.UseStage(custom, AfterStage(Update))

	idx := func(name string) int {
		for i, s := range app.stages {
			if s.Name == name {
				return i
			}
		}
		return -1
	}
	assert.Equal(t, idx("Update")+1, idx("Physics"))
	assert.Panics(t, func() { app.UseStage(custom, BeforeStage(Render)) })
	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "missing"})) })
}
