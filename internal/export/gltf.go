// Package export writes surfaces and meshes as glTF 2.0 documents.
package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/vertex"
)

// GLTFVersion is the glTF version written into the asset header.
const GLTFVersion = "2.0"

// Generator is written into the asset header.
const Generator = "lumen"

// ErrUnsupportedMode is returned for draw modes glTF cannot express.
var ErrUnsupportedMode = errors.New("draw mode not supported by glTF")

var attributeNames = map[vertex.Channel]string{
	vertex.Position:   "POSITION",
	vertex.Normal:     "NORMAL",
	vertex.TexCoord1:  "TEXCOORD_0",
	vertex.FloatColor: "COLOR_0",
	vertex.Color:      "COLOR_0",
}

var primitiveModes = map[geometry.DrawMode]gltf.PrimitiveMode{
	geometry.Points:        gltf.PrimitivePoints,
	geometry.Lines:         gltf.PrimitiveLines,
	geometry.LineLoop:      gltf.PrimitiveLineLoop,
	geometry.LineStrip:     gltf.PrimitiveLineStrip,
	geometry.Triangles:     gltf.PrimitiveTriangles,
	geometry.TriangleStrip: gltf.PrimitiveTriangleStrip,
	geometry.TriangleFan:   gltf.PrimitiveTriangleFan,
}

// NewDocument returns an empty document with one scene and one buffer.
func NewDocument() *gltf.Document {
	scene := uint32(0)
	return &gltf.Document{
		Asset: gltf.Asset{
			Version:   GLTFVersion,
			Generator: Generator,
		},
		Scene:   &scene,
		Scenes:  []*gltf.Scene{{}},
		Buffers: []*gltf.Buffer{{}},
	}
}

// SurfaceDocument exports a single surface.
func SurfaceDocument(name string, s *geometry.Surface, mode geometry.DrawMode) (*gltf.Document, error) {
	return MeshDocument(geometry.NewMesh(name, s), mode)
}

// MeshDocument exports a mesh as one glTF mesh with a primitive per surface.
// Each surface is packed into its declared layout and referenced through an
// interleaved buffer view whose stride is the format stride.
func MeshDocument(m *geometry.Mesh, mode geometry.DrawMode) (*gltf.Document, error) {
	gmode, ok := primitiveModes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}

	doc := NewDocument()
	mesh := &gltf.Mesh{Name: m.Name}
	for i, s := range m.Surfaces() {
		prim, err := addSurface(doc, s)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		prim.Mode = gmode
		mesh.Primitives = append(mesh.Primitives, prim)
	}

	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: uint32Ptr(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	logger.Debug("gltf document built",
		zap.String("mesh", m.Name),
		zap.Int("primitives", len(mesh.Primitives)),
		zap.Int("accessors", len(doc.Accessors)),
		zap.Uint32("bytes", doc.Buffers[0].ByteLength),
	)
	return doc, nil
}

func addSurface(doc *gltf.Document, s *geometry.Surface) (*gltf.Primitive, error) {
	if s.VertexCount() == 0 || s.IndexCount() == 0 {
		return nil, geometry.ErrEmptyGeometry
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data, err := geometry.Pack(s)
	if err != nil {
		return nil, err
	}

	f := s.Format()
	buffer := doc.Buffers[0]

	vertexView := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: buffer.ByteLength,
		ByteLength: uint32(len(data)),
		ByteStride: uint32(f.Stride()),
		Target:     gltf.TargetArrayBuffer,
	})
	appendData(buffer, data)

	prim := &gltf.Primitive{Attributes: gltf.Attribute{}}
	offsets := f.Offsets()
	for i, d := range f.Declarations() {
		name, ok := attributeNames[d.Channel]
		if !ok {
			continue
		}
		if _, dup := prim.Attributes[name]; dup {
			return nil, fmt.Errorf("%w: %s and another channel both export as %s",
				vertex.ErrInvalidVertexFormat, d.Channel, name)
		}
		acc := &gltf.Accessor{
			BufferView:    uint32Ptr(vertexView),
			ByteOffset:    uint32(offsets[i]),
			ComponentType: componentType(d.Type),
			Normalized:    d.Type.Normalized(),
			Count:         uint32(s.VertexCount()),
			Type:          accessorType(d.Type),
		}
		if d.Channel == vertex.Position {
			lo, hi := s.Bounds()
			acc.Min = []float32{lo[0], lo[1], lo[2]}
			acc.Max = []float32{hi[0], hi[1], hi[2]}
		}
		prim.Attributes[name] = uint32(len(doc.Accessors))
		doc.Accessors = append(doc.Accessors, acc)
	}

	indices := s.Indices()
	indexData := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(indexData[4*i:], idx)
	}
	indexView := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: buffer.ByteLength,
		ByteLength: uint32(len(indexData)),
		Target:     gltf.TargetElementArrayBuffer,
	})
	appendData(buffer, indexData)

	prim.Indices = uint32Ptr(uint32(len(doc.Accessors)))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    uint32Ptr(indexView),
		ComponentType: gltf.ComponentUint,
		Count:         uint32(len(indices)),
		Type:          gltf.AccessorScalar,
	})
	return prim, nil
}

// appendData adds data to the buffer, keeping every view 4-byte aligned.
func appendData(b *gltf.Buffer, data []byte) {
	b.Data = append(b.Data, data...)
	for len(b.Data)%4 != 0 {
		b.Data = append(b.Data, 0)
	}
	b.ByteLength = uint32(len(b.Data))
}

func componentType(t vertex.ElementType) gltf.ComponentType {
	switch t.GLType() {
	case vertex.GLUnsignedByte:
		return gltf.ComponentUbyte
	case vertex.GLShort:
		return gltf.ComponentShort
	default:
		return gltf.ComponentFloat
	}
}

func accessorType(t vertex.ElementType) gltf.AccessorType {
	switch t.Components() {
	case 2:
		return gltf.AccessorVec2
	case 3:
		return gltf.AccessorVec3
	case 4:
		return gltf.AccessorVec4
	default:
		return gltf.AccessorScalar
	}
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}

// IsBinary reports whether path names a binary .glb file.
func IsBinary(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}

// Encode writes doc to w, as GLB when glb is set. JSON output embeds the
// buffer as a data URI.
func Encode(w io.Writer, doc *gltf.Document, glb bool) error {
	if !glb {
		embedBuffers(doc)
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = glb
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding glTF: %w", err)
	}
	return nil
}

// WriteFile saves doc to path, choosing GLB or embedded JSON by extension.
func WriteFile(doc *gltf.Document, path string) error {
	glb := IsBinary(path)

	var err error
	if glb {
		err = gltf.SaveBinary(doc, path)
	} else {
		embedBuffers(doc)
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	logger.Info("gltf written", zap.String("path", path), zap.Bool("binary", glb))
	return nil
}

// embedBuffers turns in-memory buffers into data URIs for JSON output.
func embedBuffers(doc *gltf.Document) {
	for _, b := range doc.Buffers {
		if b.URI == "" && len(b.Data) > 0 {
			b.EmbeddedResource()
		}
	}
}
