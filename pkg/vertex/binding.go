package vertex

import (
	"errors"
	"fmt"
)

// Format errors.
var (
	ErrInvalidVertexFormat = errors.New("invalid vertex format")
)

// Attribute slots used by the shaders. Each declared channel maps to exactly one.
const (
	SlotPosition = 0
	SlotTexCoord = 1
	SlotColor    = 2
	SlotNormal   = 3
)

// Slot returns the shader attribute location a channel is bound to.
func Slot(c Channel) (uint32, bool) {
	switch c {
	case Position:
		return SlotPosition, true
	case TexCoord1:
		return SlotTexCoord, true
	case FloatColor, Color:
		return SlotColor, true
	case Normal:
		return SlotNormal, true
	}
	return 0, false
}

// Field locates a channel inside a stored vertex record.
type Field struct {
	Offset int
	Type   ElementType
}

// Record describes the in-memory vertex record that is uploaded as-is.
type Record struct {
	Size   int
	Fields map[Channel]Field
}

// Binding is one vertex attribute as handed to the GPU.
type Binding struct {
	Channel    Channel
	Slot       uint32
	Components int32
	GLType     uint32
	Normalized bool
	Stride     int32
	Offset     int
}

// String formats the binding for logs and CLI output.
func (b Binding) String() string {
	return fmt.Sprintf("slot=%d %s comps=%d type=0x%x norm=%t stride=%d offset=%d",
		b.Slot, b.Channel, b.Components, b.GLType, b.Normalized, b.Stride, b.Offset)
}

// Bindings derives the attribute bindings for f against the stored record.
// Every declaration yields one binding; slots come from Slot, everything else
// from the record field holding the channel.
func Bindings(f Format, rec Record) ([]Binding, error) {
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: no declared channels (mask %s)", ErrInvalidVertexFormat, f.Mask())
	}

	used := make(map[uint32]Channel, f.Len())
	out := make([]Binding, 0, f.Len())
	for _, d := range f.decls {
		slot, ok := Slot(d.Channel)
		if !ok {
			return nil, fmt.Errorf("%w: channel %s has no attribute slot", ErrInvalidVertexFormat, d.Channel)
		}
		if prev, clash := used[slot]; clash {
			return nil, fmt.Errorf("%w: %s and %s both bind slot %d", ErrInvalidVertexFormat, prev, d.Channel, slot)
		}
		used[slot] = d.Channel

		field, ok := rec.Fields[d.Channel]
		if !ok {
			return nil, fmt.Errorf("%w: record does not store %s", ErrInvalidVertexFormat, d.Channel)
		}
		out = append(out, Binding{
			Channel:    d.Channel,
			Slot:       slot,
			Components: int32(field.Type.Components()),
			GLType:     field.Type.GLType(),
			Normalized: field.Type.Normalized(),
			Stride:     int32(rec.Size),
			Offset:     field.Offset,
		})
	}
	return out, nil
}
