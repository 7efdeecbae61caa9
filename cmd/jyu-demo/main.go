// Command jyu-demo opens a window and draws instanced quads with the rgl
// wrappers, with an ImGui panel showing the instance buffer.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/jyu3d/jyu"
	"github.com/jyu3d/jyu/dearimgui"
)

func init() {
	// GLFW needs the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		title      = flag.String("title", "", "window title")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		configPath = flag.String("config", "", "TOML application config")
		shaderPath = flag.String("shader", "", "quad shader file, hot reloaded on change")
		debug      = flag.Bool("debug", false, "GL debug context and debug logging")
	)
	flag.Parse()

	spec := jyu.DefaultSpec()
	if *configPath != "" {
		loaded, err := jyu.LoadSpec(*configPath)
		if err != nil {
			fail(err)
		}
		spec = loaded
	}

	// flags win over the config file, but only when given
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			spec.Name = *title
		case "width":
			spec.Width = *width
		case "height":
			spec.Height = *height
		case "debug":
			spec.Debug = *debug
		}
	})
	if err := spec.Validate(); err != nil {
		fail(err)
	}

	app, err := jyu.NewApplicationBuilder(spec).
		UseModule(
			jyu.LoggingModule{},
			jyu.PlatformWindowModule{},
			dearimgui.Module{},
			jyu.InputModule{},
			jyu.ShaderWatchModule{},
		).
		Build()
	if err != nil {
		fail(err)
	}

	layer, err := newQuadLayer(app, *shaderPath)
	if err != nil {
		app.Logger().Errorf("%v", err)
		os.Exit(1)
	}
	app.PushLayer(layer)

	if err := app.Run(); err != nil {
		app.Logger().Errorf("%v", err)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "jyu-demo: %v\n", err)
	os.Exit(1)
}
