package geometry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/formats"
	"github.com/Faultbox/lumen/pkg/vertex"
)

// LoadOBJ parses an OBJ file into an unbuilt mesh with one surface per
// non-empty face group. A file without faces is ErrEmptyGeometry.
func LoadOBJ(path string) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	if obj.FaceCount() == 0 {
		return nil, fmt.Errorf("%w: %s has no faces", ErrEmptyGeometry, path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := MeshFromOBJ(name, obj)

	logger.Info("obj loaded",
		zap.String("path", path),
		zap.Int("surfaces", len(m.Surfaces())),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.IndexCount()/3),
	)
	return m, nil
}

// MeshFromOBJ expands every group of a parsed OBJ into its own surface.
func MeshFromOBJ(name string, obj *formats.OBJ) *Mesh {
	m := NewMesh(name)
	for _, g := range obj.Groups {
		m.Add(SurfaceFromOBJ(obj, g.Faces))
	}
	return m
}

// SurfaceFromOBJ de-indexes faces into a Standard surface: every face adds
// three new vertices and one triangle. Omitted texture coordinates and normals
// stay zero; the color is white.
func SurfaceFromOBJ(obj *formats.OBJ, faces []formats.OBJFace) *Surface {
	s := NewSurface(vertex.Standard)
	for _, f := range faces {
		var idx [3]int
		for k, ref := range f {
			v := Vertex{
				Position: mgl32.Vec3(obj.Positions[ref.Position]),
				Color:    White,
			}
			if ref.TexCoord >= 0 {
				v.TexCoord = mgl32.Vec2(obj.TexCoords[ref.TexCoord])
			}
			if ref.Normal >= 0 {
				v.Normal = mgl32.Vec3(obj.Normals[ref.Normal])
			}
			idx[k] = s.AddVertexRecord(v)
		}
		s.AddTriangle(idx[0], idx[1], idx[2])
	}
	return s
}
