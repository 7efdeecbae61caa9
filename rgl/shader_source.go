package rgl

import (
	"fmt"
	"os"
	"strings"
)

type ShaderType uint8

const (
	VertexShader ShaderType = iota
	FragmentShader
	TessControlShader
	TessEvalShader
	GeometryShader
	ComputeShader
)

var shaderTypeNames = map[string]ShaderType{
	"vertex":       VertexShader,
	"fragment":     FragmentShader,
	"tess_control": TessControlShader,
	"tess_eval":    TessEvalShader,
	"geometry":     GeometryShader,
	"compute":      ComputeShader,
}

func (t ShaderType) String() string {
	for name, st := range shaderTypeNames {
		if st == t {
			return name
		}
	}
	return "unknown"
}

func ParseShaderType(name string) (ShaderType, error) {
	if t, ok := shaderTypeNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShaderType, name)
}

// ShaderSource is the source of one stage of a program.
type ShaderSource struct {
	Type   ShaderType
	Source string
}

const shaderTypeToken = "#type"

// ParseShaderSources splits a multi-stage source file at its "#type <stage>"
// lines. The body of a stage starts on the line after its marker and runs to
// the next marker. An unknown stage fails the whole parse.
func ParseShaderSources(source string) ([]ShaderSource, error) {
	var stages []ShaderSource

	pos := strings.Index(source, shaderTypeToken)
	for pos != -1 {
		eol := len(source)
		if i := strings.IndexAny(source[pos:], "\r\n"); i != -1 {
			eol = pos + i
		}
		begin := min(pos+len(shaderTypeToken)+1, eol)

		t, err := ParseShaderType(strings.TrimSpace(source[begin:eol]))
		if err != nil {
			return nil, err
		}

		next := eol
		for next < len(source) && (source[next] == '\r' || source[next] == '\n') {
			next++
		}

		body := source[next:]
		pos = -1
		if i := strings.Index(body, shaderTypeToken); i != -1 {
			body = body[:i]
			pos = next + i
		}
		stages = append(stages, ShaderSource{Type: t, Source: body})
	}

	return stages, nil
}

// ReadShaderFile returns the contents of a shader source file.
func ReadShaderFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("rgl: read shader: %w", err)
	}
	return string(data), nil
}

// LoadShaderSources reads path and splits it into stages.
func LoadShaderSources(path string) ([]ShaderSource, error) {
	src, err := ReadShaderFile(path)
	if err != nil {
		return nil, err
	}
	stages, err := ParseShaderSources(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stages, nil
}
