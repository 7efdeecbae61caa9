package jyu

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// Module installs resources and systems into an App while it is being built.
type Module interface {
	Install(app *App, cmd *Commands) error
}

type systemFn any

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type App struct {
	spec      ApplicationSpec
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	layers    *LayerStack

	running  bool
	shutdown []func()
}

// Run drives the frame loop until Close is called, usually by the window
// module when the user closes the window. Layers are destroyed and module
// resources released before Run returns.
func (app *App) Run() error {
	if app.running {
		return errors.New("jyu: application already running")
	}
	app.running = true
	defer app.teardown()

	app.Logger().Infof("running %s", app.spec.Name)
	for app.running {
		for _, stage := range app.stages {
			app.callSystems(stage)
		}
	}
	return nil
}

// Close stops the loop after the current frame completes.
func (app *App) Close() {
	app.running = false
}

func (app *App) Spec() ApplicationSpec {
	return app.spec
}

func (app *App) Layers() *LayerStack {
	return app.layers
}

// PushLayer adds a layer on top of the stack and starts it.
func (app *App) PushLayer(layer Layer) LayerID {
	return app.layers.Push(layer)
}

// PopLayer destroys and removes the layer with the given id.
func (app *App) PopLayer(id LayerID) bool {
	return app.layers.Pop(id)
}

// GetTime returns seconds since the application clock started. With a window
// this is the GLFW timer.
func (app *App) GetTime() float64 {
	if t, ok := Resource[Time](app); ok {
		return t.Now()
	}
	return 0
}

// Resource returns the resource of type *T, if one was added.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// onShutdown registers fn to run when Run returns. Functions run in reverse
// registration order, after all layers are destroyed.
func (app *App) onShutdown(fn func()) {
	app.shutdown = append(app.shutdown, fn)
}

func (app *App) teardown() {
	app.running = false
	app.layers.Clear()
	for i := len(app.shutdown) - 1; i >= 0; i-- {
		app.shutdown[i]()
	}
	app.shutdown = nil
}

func (app *App) callSystems(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemValue := reflect.ValueOf(system)
	args, err := app.resolveArgs(systemValue.Type())
	if err != nil {
		msg := fmt.Sprintf("%s: %v", runtime.FuncForPC(systemValue.Pointer()).Name(), err)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}

	out := systemValue.Call(args)
	if len(out) == 1 && !out[0].IsNil() {
		app.Logger().Errorf("%s: %v", runtime.FuncForPC(systemValue.Pointer()).Name(), out[0].Interface())
	}
}

// resolveArgs maps every parameter of a system to *Commands or to a resource.
func (app *App) resolveArgs(systemType reflect.Type) ([]reflect.Value, error) {
	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			return nil, fmt.Errorf("system argument %s is not a pointer", argType)
		}

		underlyingType := argType.Elem()
		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			return nil, fmt.Errorf("unable to resolve system dependency %s", argType)
		}
	}
	return args, nil
}

// validateSystem checks a system's shape and that its dependencies exist.
func (app *App) validateSystem(system systemFn) error {
	systemType := reflect.TypeOf(system)
	if systemType == nil || systemType.Kind() != reflect.Func {
		return fmt.Errorf("system %T is not a function", system)
	}
	switch {
	case systemType.NumOut() == 0:
	case systemType.NumOut() == 1 && systemType.Out(0) == errorType:
	default:
		return fmt.Errorf("system %s must return nothing or an error", systemType)
	}
	_, err := app.resolveArgs(systemType)
	return err
}
