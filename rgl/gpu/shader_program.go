package gpu

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/jyu3d/jyu/rgl"
)

var glShaderTypes = map[rgl.ShaderType]uint32{
	rgl.VertexShader:      gl.VERTEX_SHADER,
	rgl.FragmentShader:    gl.FRAGMENT_SHADER,
	rgl.TessControlShader: gl.TESS_CONTROL_SHADER,
	rgl.TessEvalShader:    gl.TESS_EVALUATION_SHADER,
	rgl.GeometryShader:    gl.GEOMETRY_SHADER,
	rgl.ComputeShader:     gl.COMPUTE_SHADER,
}

// ShaderFile is one stage of a program kept in its own file.
type ShaderFile struct {
	Type rgl.ShaderType
	Path string
}

// ShaderProgram is a linked and validated GL program with a cache of uniform
// locations.
type ShaderProgram struct {
	id       uint32
	name     string
	stages   []rgl.ShaderSource
	uniforms map[string]int32

	// one of these is set when the program came from disk
	path  string
	files []ShaderFile
}

// NewShaderProgram builds a program from a single file split at its
// "#type <stage>" markers. The program is named after the file.
func NewShaderProgram(path string) (*ShaderProgram, error) {
	p := &ShaderProgram{name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), path: path}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewShaderProgramFromFiles builds a program with one file per stage.
func NewShaderProgramFromFiles(name string, files ...ShaderFile) (*ShaderProgram, error) {
	p := &ShaderProgram{name: name, files: files}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewShaderProgramFromSources builds a program from in-memory stages. An
// empty name gets a generated one.
func NewShaderProgramFromSources(name string, stages ...rgl.ShaderSource) (*ShaderProgram, error) {
	if name == "" {
		name = "program-" + uuid.NewString()
	}
	p := &ShaderProgram{name: name, stages: stages}
	id, err := buildProgram(name, stages)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *ShaderProgram) ID() uint32 {
	return p.id
}

func (p *ShaderProgram) Name() string {
	return p.name
}

// Stages returns the sources the program was last built from.
func (p *ShaderProgram) Stages() []rgl.ShaderSource {
	return p.stages
}

// Files lists the files the program reads on Reload.
func (p *ShaderProgram) Files() []string {
	if p.path != "" {
		return []string{p.path}
	}
	paths := make([]string, len(p.files))
	for i, f := range p.files {
		paths[i] = f.Path
	}
	return paths
}

func (p *ShaderProgram) Bind() {
	gl.UseProgram(p.id)
}

func (p *ShaderProgram) Unbind() {
	gl.UseProgram(0)
}

// Reload rebuilds the program from its files. On failure the previous
// program stays in use and the error is returned.
func (p *ShaderProgram) Reload() error {
	if p.path == "" && len(p.files) == 0 {
		return nil
	}
	return p.load()
}

func (p *ShaderProgram) load() error {
	stages, err := p.readStages()
	if err != nil {
		return err
	}
	id, err := buildProgram(p.name, stages)
	if err != nil {
		return err
	}

	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
	p.id = id
	p.stages = stages
	p.uniforms = nil
	rgl.Log().Debug("shader program built", "name", p.name, "stages", len(stages))
	return nil
}

func (p *ShaderProgram) readStages() ([]rgl.ShaderSource, error) {
	if p.path != "" {
		return rgl.LoadShaderSources(p.path)
	}
	stages := make([]rgl.ShaderSource, 0, len(p.files))
	for _, f := range p.files {
		src, err := rgl.ReadShaderFile(f.Path)
		if err != nil {
			return nil, err
		}
		stages = append(stages, rgl.ShaderSource{Type: f.Type, Source: src})
	}
	return stages, nil
}

// Dispatch runs a compute program and waits for its storage writes to be
// visible.
func (p *ShaderProgram) Dispatch(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
}

func (p *ShaderProgram) SetUniform1i(name string, v int32) {
	gl.Uniform1i(p.uniformLocation(name), v)
}

func (p *ShaderProgram) SetUniform1f(name string, v float32) {
	gl.Uniform1f(p.uniformLocation(name), v)
}

func (p *ShaderProgram) SetUniform2f(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.uniformLocation(name), v[0], v[1])
}

func (p *ShaderProgram) SetUniform3f(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.uniformLocation(name), v[0], v[1], v[2])
}

func (p *ShaderProgram) SetUniform4f(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.uniformLocation(name), v[0], v[1], v[2], v[3])
}

func (p *ShaderProgram) SetUniformMat3f(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.uniformLocation(name), 1, false, &m[0])
}

func (p *ShaderProgram) SetUniformMat4f(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.uniformLocation(name), 1, false, &m[0])
}

// uniformLocation caches lookups, misses included. A missing uniform is
// logged once and then set silently, as GL ignores location -1.
func (p *ShaderProgram) uniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	if p.uniforms == nil {
		p.uniforms = make(map[string]int32)
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc == -1 {
		rgl.Log().Warn("uniform not found", "program", p.name, "uniform", name)
	}
	p.uniforms[name] = loc
	return loc
}

func (p *ShaderProgram) Delete() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
}

func (p *ShaderProgram) Move() *ShaderProgram {
	moved := *p
	p.id = 0
	p.uniforms = nil
	return &moved
}

func buildProgram(name string, stages []rgl.ShaderSource) (uint32, error) {
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, stage := range stages {
		s, err := compileShader(stage)
		if err != nil {
			return 0, fmt.Errorf("program %s: %w", name, err)
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program %s: %w: %s", name, ErrShaderLink, msg)
	}

	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		msg := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program %s: %w: %s", name, ErrShaderValidate, msg)
	}

	return program, nil
}

func compileShader(stage rgl.ShaderSource) (uint32, error) {
	shader := gl.CreateShader(glShaderTypes[stage.Type])

	csources, free := gl.Strs(stage.Source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s stage: %w: %s", stage.Type, ErrShaderCompile, strings.TrimRight(msg, "\x00\n"))
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00\n")
}
