// Package vertex describes configurable vertex formats: which channels a mesh
// declares to the GPU, their element types, strides and byte offsets.
package vertex

import (
	"fmt"
	"strings"
)

// Channel is a single bit of a vertex channel mask.
type Channel uint32

// Channel bits. The numeric values are part of the config and CLI surface.
const (
	Position   Channel = 1 << 0 // 3 floats x,y,z
	Normal     Channel = 1 << 1 // 3 floats x,y,z
	Color      Channel = 1 << 2 // 4 bytes r,g,b,a
	FloatColor Channel = 1 << 3 // 4 floats r,g,b,a
	Binormal   Channel = 1 << 4
	Tangent    Channel = 1 << 5
	TexCoord1  Channel = 1 << 6
	TexCoord2  Channel = 1 << 7
	TexCoord3  Channel = 1 << 8
	TexCoord4  Channel = 1 << 9
	TexCoord5  Channel = 1 << 10

	// Standard is the mask used by the procedural shapes and the OBJ importer.
	Standard = Position | TexCoord1 | FloatColor | Normal
)

var channelNames = []struct {
	ch   Channel
	name string
}{
	{Position, "position"},
	{Normal, "normal"},
	{Color, "color"},
	{FloatColor, "fcolor"},
	{Binormal, "binormal"},
	{Tangent, "tangent"},
	{TexCoord1, "tex1"},
	{TexCoord2, "tex2"},
	{TexCoord3, "tex3"},
	{TexCoord4, "tex4"},
	{TexCoord5, "tex5"},
}

// String returns the channel names joined by '|'.
func (c Channel) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	rest := c
	for _, n := range channelNames {
		if c&n.ch != 0 {
			parts = append(parts, n.name)
			rest &^= n.ch
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseChannels parses a mask written as names joined by '|' or ',', e.g.
// "position|tex1|fcolor|normal". "standard" expands to Standard.
func ParseChannels(s string) (Channel, error) {
	var mask Channel
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		name := strings.ToLower(field)
		if name == "standard" {
			mask |= Standard
			continue
		}
		found := false
		for _, n := range channelNames {
			if n.name == name {
				mask |= n.ch
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown channel %q", ErrInvalidVertexFormat, field)
		}
	}
	return mask, nil
}

// ElementType is the storage type of one declared channel.
type ElementType uint8

// Element types.
const (
	Float1 ElementType = iota
	Float2
	Float3
	Float4
	Short1
	Short2
	Short3
	Short4
	Byte3
	Byte4
)

// GL component type enums. Kept as plain values so this package stays free of cgo.
const (
	GLUnsignedByte uint32 = 0x1401
	GLShort        uint32 = 0x1402
	GLFloat        uint32 = 0x1406
)

// Components returns the number of components of t.
func (t ElementType) Components() int {
	switch t {
	case Float1, Short1:
		return 1
	case Float2, Short2:
		return 2
	case Float3, Short3, Byte3:
		return 3
	case Float4, Short4, Byte4:
		return 4
	}
	return 0
}

// Size returns the byte size of t. Byte types are tightly packed.
func (t ElementType) Size() int {
	switch t {
	case Float1, Float2, Float3, Float4:
		return 4 * t.Components()
	case Short1, Short2, Short3, Short4:
		return 2 * t.Components()
	case Byte3, Byte4:
		return t.Components()
	}
	return 0
}

// GLType returns the GL component type enum of t.
func (t ElementType) GLType() uint32 {
	switch t {
	case Float1, Float2, Float3, Float4:
		return GLFloat
	case Short1, Short2, Short3, Short4:
		return GLShort
	case Byte3, Byte4:
		return GLUnsignedByte
	}
	return 0
}

// Normalized reports whether integer data of t maps to [0,1] in the shader.
func (t ElementType) Normalized() bool {
	return t == Byte3 || t == Byte4
}

// String returns the element type name.
func (t ElementType) String() string {
	switch t {
	case Float1:
		return "float1"
	case Float2:
		return "float2"
	case Float3:
		return "float3"
	case Float4:
		return "float4"
	case Short1:
		return "short1"
	case Short2:
		return "short2"
	case Short3:
		return "short3"
	case Short4:
		return "short4"
	case Byte3:
		return "byte3"
	case Byte4:
		return "byte4"
	default:
		return fmt.Sprintf("ElementType(%d)", uint8(t))
	}
}

// ElementTypeOf returns the element type a channel is declared with.
func ElementTypeOf(c Channel) (ElementType, bool) {
	switch c {
	case Position, Normal, Binormal, Tangent:
		return Float3, true
	case FloatColor:
		return Float4, true
	case Color:
		return Byte4, true
	case TexCoord1, TexCoord2, TexCoord3, TexCoord4, TexCoord5:
		return Float2, true
	}
	return 0, false
}

// Declaration is one declared channel of a format.
type Declaration struct {
	Channel Channel
	Type    ElementType
}

// decodeOrder is the priority in which mask bits become declarations.
// Binormal, Tangent and TexCoord2..5 are recognized but never declared.
var decodeOrder = []Channel{Position, TexCoord1, FloatColor, Color, Normal}

// Decode turns a channel mask into its ordered declaration list.
func Decode(mask Channel) []Declaration {
	var decls []Declaration
	for _, ch := range decodeOrder {
		if mask&ch == 0 {
			continue
		}
		t, _ := ElementTypeOf(ch)
		decls = append(decls, Declaration{Channel: ch, Type: t})
	}
	return decls
}

// Stride returns the interleaved size of one vertex described by decls.
func Stride(decls []Declaration) int {
	n := 0
	for _, d := range decls {
		n += d.Type.Size()
	}
	return n
}

// Format is a decoded channel mask. It is immutable once built.
type Format struct {
	mask    Channel
	decls   []Declaration
	offsets []int
	stride  int
}

// NewFormat decodes mask and precomputes offsets and stride.
func NewFormat(mask Channel) Format {
	decls := Decode(mask)
	offsets := make([]int, len(decls))
	off := 0
	for i, d := range decls {
		offsets[i] = off
		off += d.Type.Size()
	}
	return Format{
		mask:    mask,
		decls:   decls,
		offsets: offsets,
		stride:  off,
	}
}

// Mask returns the mask the format was built from.
func (f Format) Mask() Channel { return f.mask }

// Declarations returns a copy of the ordered declarations.
func (f Format) Declarations() []Declaration {
	return append([]Declaration(nil), f.decls...)
}

// Len returns the number of declarations.
func (f Format) Len() int { return len(f.decls) }

// Stride returns the packed size of one vertex in bytes.
func (f Format) Stride() int { return f.stride }

// Offsets returns the packed byte offset of each declaration.
func (f Format) Offsets() []int {
	return append([]int(nil), f.offsets...)
}

// Offset returns the packed byte offset of a declared channel.
func (f Format) Offset(c Channel) (int, bool) {
	for i, d := range f.decls {
		if d.Channel == c {
			return f.offsets[i], true
		}
	}
	return 0, false
}

// Has reports whether c is declared (not merely set in the mask).
func (f Format) Has(c Channel) bool {
	_, ok := f.Offset(c)
	return ok
}
