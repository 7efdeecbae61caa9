package jyu

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type GLVersion struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
}

// ApplicationSpec is the startup configuration of an App. It can be read
// from a TOML file; keys missing from the file keep their defaults.
type ApplicationSpec struct {
	Name     string    `toml:"name"`
	Width    int       `toml:"width"`
	Height   int       `toml:"height"`
	Samples  int       `toml:"samples"`
	VSync    bool      `toml:"vsync"`
	Debug    bool      `toml:"debug"`
	LogLevel string    `toml:"log_level"`
	GL       GLVersion `toml:"gl"`
}

func DefaultSpec() ApplicationSpec {
	return ApplicationSpec{
		Name:     "Jyu App",
		Width:    1280,
		Height:   720,
		Samples:  4,
		VSync:    true,
		LogLevel: "info",
		GL:       GLVersion{Major: 4, Minor: 6},
	}
}

// ParseSpec decodes TOML over the defaults.
func ParseSpec(data []byte) (ApplicationSpec, error) {
	spec := DefaultSpec()
	if err := toml.Unmarshal(data, &spec); err != nil {
		return ApplicationSpec{}, fmt.Errorf("parse spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return ApplicationSpec{}, err
	}
	return spec, nil
}

func LoadSpec(path string) (ApplicationSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ApplicationSpec{}, fmt.Errorf("load spec: %w", err)
	}
	spec, err := ParseSpec(data)
	if err != nil {
		return ApplicationSpec{}, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

var ErrInvalidSpec = errors.New("invalid application spec")

func (s ApplicationSpec) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSpec, s.Width, s.Height)
	case s.Samples < 0:
		return fmt.Errorf("%w: samples %d", ErrInvalidSpec, s.Samples)
	case s.GL.Major < 4 || (s.GL.Major == 4 && s.GL.Minor < 5):
		return fmt.Errorf("%w: OpenGL %d.%d, need 4.5 or newer", ErrInvalidSpec, s.GL.Major, s.GL.Minor)
	}
	return nil
}
