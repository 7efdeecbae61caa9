package jyu

import (
	"fmt"
	"reflect"
)

type ApplicationBuilder struct {
	app     *App
	modules []Module
}

// NewApplicationBuilder starts an App from spec. Every App gets the layer
// stack, the frame timer and a UI hook; everything else comes from modules.
func NewApplicationBuilder(spec ApplicationSpec) *ApplicationBuilder {
	app := &App{
		spec:      spec,
		stages:    defaultStages(),
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		layers:    newLayerStack(),
	}
	for _, stage := range app.stages {
		app.systems[stage.Name] = nil
	}
	return &ApplicationBuilder{app: app, modules: []Module{coreModule{}, TimeModule{}}}
}

func (b *ApplicationBuilder) UseModule(modules ...Module) *ApplicationBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs the modules in order and checks that every scheduled system
// can be called. On error, resources already acquired by modules are
// released.
func (b *ApplicationBuilder) Build() (*App, error) {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		if err := module.Install(app, commands); err != nil {
			app.teardown()
			return nil, fmt.Errorf("install %T: %w", module, err)
		}
	}

	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			if err := app.validateSystem(system); err != nil {
				app.teardown()
				return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
			}
		}
	}

	return app, nil
}

// coreModule provides the resources every App has.
type coreModule struct{}

func (coreModule) Install(app *App, cmd *Commands) error {
	spec := app.spec
	cmd.AddResources(&spec, app.layers, &UI{Backend: nopUIBackend{}})
	app.UseSystem(System(layerUpdateSystem).InStage(Update))
	app.UseSystem(System(uiSystem).InStage(Render))
	return nil
}

func layerUpdateSystem(layers *LayerStack, t *Time) {
	layers.Update(t.Step)
}
