package jyu

// Commands is what modules and systems use to change the running App.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) PushLayer(layer Layer) LayerID {
	return cmd.app.PushLayer(layer)
}

func (cmd *Commands) PopLayer(id LayerID) bool {
	return cmd.app.PopLayer(id)
}

// Close asks the App to stop after the current frame.
func (cmd *Commands) Close() {
	cmd.app.Close()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
