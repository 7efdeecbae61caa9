package jyu

// UIBackend is an immediate-mode UI integration. NewFrame runs before the
// layers' OnUIUpdate hooks and Render after them, once per frame.
type UIBackend interface {
	NewFrame()
	Render()
	Shutdown()
}

type nopUIBackend struct{}

func (nopUIBackend) NewFrame() {}
func (nopUIBackend) Render()   {}
func (nopUIBackend) Shutdown() {}

// UI holds the active backend. Without a UIModule the hooks still run
// between no-op frames.
type UI struct {
	Backend UIBackend
}

// UIModule plugs a backend into the App and shuts it down on exit.
type UIModule struct {
	Backend UIBackend
}

func (m UIModule) Install(app *App, cmd *Commands) error {
	if m.Backend == nil {
		return nil
	}
	ui, _ := Resource[UI](app)
	ui.Backend = m.Backend
	app.onShutdown(m.Backend.Shutdown)
	return nil
}

func uiSystem(layers *LayerStack, ui *UI) {
	ui.Backend.NewFrame()
	layers.UIUpdate()
	ui.Backend.Render()
}
