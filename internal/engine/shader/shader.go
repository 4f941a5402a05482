// Package shader provides OpenGL shader compilation and uniform access.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
)

// Shader errors.
var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

// Variable is an active attribute or uniform of a linked program.
type Variable struct {
	Name     string
	Location int32
	Type     uint32
	Size     int32
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
	missing  map[string]bool
}

// New compiles and links a program. name is used in logs and errors.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	p := &Program{
		ID:       id,
		name:     name,
		uniforms: make(map[string]int32),
		missing:  make(map[string]bool),
	}

	log := logger.Named("shader")
	for _, a := range p.ActiveAttributes() {
		log.Debug("active attribute", zap.String("program", name), zap.String("name", a.Name), zap.Int32("location", a.Location))
	}
	for _, u := range p.ActiveUniforms() {
		p.uniforms[u.Name] = u.Location
		log.Debug("active uniform", zap.String("program", name), zap.String("name", u.Name), zap.Int32("location", u.Location))
	}
	log.Info("program linked", zap.String("program", name), zap.Uint32("id", id))
	return p, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, name, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Uniform returns the location of a uniform, or -1 if the program has no
// active uniform with that name. Misses are logged once per name.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		if !p.missing[name] {
			p.missing[name] = true
			logger.Named("shader").Debug("uniform not active", zap.String("program", p.name), zap.String("name", name))
		}
		return -1
	}
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform on the current program.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.Uniform(name), 1, &v[0])
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.Uniform(name), 1, &v[0])
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// ActiveAttributes lists the active vertex attributes.
func (p *Program) ActiveAttributes() []Variable {
	var count, maxLen int32
	gl.GetProgramiv(p.ID, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(p.ID, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)

	vars := make([]Variable, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		v := readVariable(maxLen, func(buf *uint8, length, size *int32, typ *uint32) {
			gl.GetActiveAttrib(p.ID, i, maxLen+1, length, size, typ, buf)
		})
		v.Location = gl.GetAttribLocation(p.ID, gl.Str(v.Name+"\x00"))
		vars = append(vars, v)
	}
	return vars
}

// ActiveUniforms lists the active uniforms.
func (p *Program) ActiveUniforms() []Variable {
	var count, maxLen int32
	gl.GetProgramiv(p.ID, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(p.ID, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	vars := make([]Variable, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		v := readVariable(maxLen, func(buf *uint8, length, size *int32, typ *uint32) {
			gl.GetActiveUniform(p.ID, i, maxLen+1, length, size, typ, buf)
		})
		v.Location = gl.GetUniformLocation(p.ID, gl.Str(v.Name+"\x00"))
		vars = append(vars, v)
	}
	return vars
}

func readVariable(maxLen int32, get func(buf *uint8, length, size *int32, typ *uint32)) Variable {
	buf := make([]uint8, maxLen+1)
	var length, size int32
	var typ uint32
	get(&buf[0], &length, &size, &typ)
	return Variable{Name: string(buf[:length]), Type: typ, Size: size}
}
