package jyu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) error {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
	return nil
}

type failingModule struct {
	err error
}

func (m failingModule) Install(app *App, commands *Commands) error {
	return m.err
}

type missingDependency struct{}

func TestAppBuilder_InstallsModulesInOrder(t *testing.T) {
	var order []string
	m1 := &MockModule{order: &order, name: "first"}
	m2 := &MockModule{order: &order, name: "second"}

	app, err := NewApplicationBuilder(DefaultSpec()).UseModule(m1).UseModule(m2).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m1.installed || !m2.installed {
		t.Errorf("Expected both modules to be installed")
	}
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("Expected install order first,second, got %v", order)
	}
	if _, ok := Resource[Time](app); !ok {
		t.Errorf("Expected the Time resource to be provided by default")
	}
	if _, ok := Resource[LayerStack](app); !ok {
		t.Errorf("Expected the LayerStack resource to be provided by default")
	}
}

func TestAppBuilder_SpecIsAResource(t *testing.T) {
	spec := DefaultSpec()
	spec.Name = "builder test"

	app, err := NewApplicationBuilder(spec).Build()
	require.NoError(t, err)

	got, ok := Resource[ApplicationSpec](app)
	require.True(t, ok)
	assert.Equal(t, "builder test", got.Name)
	assert.Equal(t, "builder test", app.Spec().Name)
}

func TestAppBuilder_InstallError(t *testing.T) {
	boom := errors.New("boom")
	m := &MockModule{}

	app, err := NewApplicationBuilder(DefaultSpec()).UseModule(failingModule{err: boom}, m).Build()

	require.ErrorIs(t, err, boom)
	assert.Nil(t, app)
	assert.False(t, m.installed, "modules after a failing one are not installed")
}

func TestAppBuilder_InstallErrorReleasesResources(t *testing.T) {
	released := false
	mod := moduleFunc(func(app *App, cmd *Commands) error {
		app.onShutdown(func() { released = true })
		return nil
	})

	_, err := NewApplicationBuilder(DefaultSpec()).
		UseModule(mod, failingModule{err: errors.New("late failure")}).
		Build()

	require.Error(t, err)
	assert.True(t, released)
}

func TestAppBuilder_UnresolvedSystemDependency(t *testing.T) {
	mod := moduleFunc(func(app *App, cmd *Commands) error {
		app.UseSystem(System(func(*missingDependency) {}).InStage(PreRender))
		return nil
	})

	_, err := NewApplicationBuilder(DefaultSpec()).UseModule(mod).Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage PreRender")
	assert.Contains(t, err.Error(), "missingDependency")
}

func TestAppBuilder_InvalidSystems(t *testing.T) {
	cases := map[string]systemFn{
		"not a function":   42,
		"wrong return":     func() int { return 0 },
		"value parameter":  func(Time) {},
		"two return value": func() (int, error) { return 0, nil },
	}
	for name, system := range cases {
		t.Run(name, func(t *testing.T) {
			mod := moduleFunc(func(app *App, cmd *Commands) error {
				app.UseSystem(System(system))
				return nil
			})
			_, err := NewApplicationBuilder(DefaultSpec()).UseModule(mod).Build()
			assert.Error(t, err)
		})
	}
}

func TestAppBuilder_LoggingModule(t *testing.T) {
	var buf bytes.Buffer
	spec := DefaultSpec()
	spec.Name = "logtest"

	app, err := NewApplicationBuilder(spec).
		UseModule(LoggingModule{Output: &buf, Level: "warn"}).
		Build()
	require.NoError(t, err)

	logger := app.Logger()
	require.IsType(t, &DefaultLogger{}, logger)
	assert.False(t, logger.DebugEnabled())

	logger.Infof("hidden")
	logger.Warnf("shown %d", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
	assert.Contains(t, buf.String(), "logtest")

	logger.SetDebug(true)
	assert.True(t, logger.DebugEnabled())
}

func TestAppBuilder_LoggingModuleDebugSpec(t *testing.T) {
	spec := DefaultSpec()
	spec.Debug = true

	app, err := NewApplicationBuilder(spec).
		UseModule(LoggingModule{Output: &bytes.Buffer{}, Level: "error"}).
		Build()
	require.NoError(t, err)
	assert.True(t, app.Logger().DebugEnabled())
}

func TestAppBuilder_LoggingModuleBadLevel(t *testing.T) {
	_, err := NewApplicationBuilder(DefaultSpec()).
		UseModule(LoggingModule{Output: &bytes.Buffer{}, Level: "loud"}).
		Build()
	assert.Error(t, err)
}

func TestAppBuilder_NoLoggerIsNop(t *testing.T) {
	app, err := NewApplicationBuilder(DefaultSpec()).Build()
	require.NoError(t, err)

	assert.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())
	assert.NotNil(t, (*App)(nil).Logger())
}

type recordingUI struct {
	events []string
}

func (u *recordingUI) NewFrame() { u.events = append(u.events, "new") }
func (u *recordingUI) Render()   { u.events = append(u.events, "render") }
func (u *recordingUI) Shutdown() { u.events = append(u.events, "shutdown") }

type uiLayer struct {
	BaseLayer
	ui  *recordingUI
	app *App
}

func (l *uiLayer) OnUIUpdate() {
	l.ui.events = append(l.ui.events, "layer")
	l.app.Close()
}

func TestAppBuilder_UIModule(t *testing.T) {
	ui := &recordingUI{}
	app, err := NewApplicationBuilder(DefaultSpec()).UseModule(UIModule{Backend: ui}).Build()
	require.NoError(t, err)

	app.PushLayer(&uiLayer{ui: ui, app: app})
	require.NoError(t, app.Run())

	assert.Equal(t, []string{"new", "layer", "render", "shutdown"}, ui.events)
}

func TestAppBuilder_InputModuleNeedsSource(t *testing.T) {
	_, err := NewApplicationBuilder(DefaultSpec()).UseModule(InputModule{}).Build()
	assert.Error(t, err)
}

type moduleFunc func(app *App, cmd *Commands) error

func (f moduleFunc) Install(app *App, cmd *Commands) error {
	return f(app, cmd)
}
