package export

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/pkg/vertex"
)

func TestSurfaceDocument_Cube(t *testing.T) {
	cube := geometry.CreateCube()
	doc, err := SurfaceDocument("cube", cube, geometry.Triangles)
	if err != nil {
		t.Fatalf("SurfaceDocument failed: %v", err)
	}

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("expected 1 mesh with 1 primitive")
	}
	if len(doc.BufferViews) != 2 {
		t.Fatalf("expected 2 buffer views, got %d", len(doc.BufferViews))
	}

	f := cube.Format()
	vv := doc.BufferViews[0]
	if vv.ByteStride != uint32(f.Stride()) {
		t.Errorf("byte stride = %d, want %d", vv.ByteStride, f.Stride())
	}
	if vv.ByteLength != uint32(24*f.Stride()) {
		t.Errorf("vertex view length = %d, want %d", vv.ByteLength, 24*f.Stride())
	}
	if iv := doc.BufferViews[1]; iv.ByteOffset != vv.ByteLength || iv.ByteLength != 36*4 {
		t.Errorf("index view at %d length %d", iv.ByteOffset, iv.ByteLength)
	}

	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != gltf.PrimitiveTriangles {
		t.Errorf("mode = %v, want triangles", prim.Mode)
	}

	want := map[string]struct {
		offset int
		typ    gltf.AccessorType
	}{
		"POSITION":   {0, gltf.AccessorVec3},
		"TEXCOORD_0": {12, gltf.AccessorVec2},
		"COLOR_0":    {20, gltf.AccessorVec4},
		"NORMAL":     {36, gltf.AccessorVec3},
	}
	if len(prim.Attributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(prim.Attributes))
	}
	for name, w := range want {
		idx, ok := prim.Attributes[name]
		if !ok {
			t.Errorf("missing attribute %s", name)
			continue
		}
		acc := doc.Accessors[idx]
		if acc.ByteOffset != uint32(w.offset) || acc.Type != w.typ || acc.Count != 24 {
			t.Errorf("%s: offset %d type %v count %d, want offset %d type %v count 24",
				name, acc.ByteOffset, acc.Type, acc.Count, w.offset, w.typ)
		}
	}

	pos := doc.Accessors[prim.Attributes["POSITION"]]
	if len(pos.Min) != 3 || pos.Min[0] != -1 || pos.Max[2] != 1 {
		t.Errorf("position bounds = %v %v", pos.Min, pos.Max)
	}

	ind := doc.Accessors[*prim.Indices]
	if ind.ComponentType != gltf.ComponentUint || ind.Count != 36 {
		t.Errorf("index accessor = %v x %d", ind.ComponentType, ind.Count)
	}
}

func TestSurfaceDocument_ByteColor(t *testing.T) {
	s := geometry.NewSurface(vertex.Position | vertex.Color)
	s.AddVertex(geometry.VertexOptions{})
	s.AddVertex(geometry.VertexOptions{})
	s.AddVertex(geometry.VertexOptions{})
	s.AddTriangle(0, 1, 2)

	doc, err := SurfaceDocument("tri", s, geometry.Triangles)
	if err != nil {
		t.Fatalf("SurfaceDocument failed: %v", err)
	}
	acc := doc.Accessors[doc.Meshes[0].Primitives[0].Attributes["COLOR_0"]]
	if acc.ComponentType != gltf.ComponentUbyte || !acc.Normalized || acc.ByteOffset != 12 {
		t.Errorf("color accessor = %v normalized %v offset %d", acc.ComponentType, acc.Normalized, acc.ByteOffset)
	}
	if doc.BufferViews[0].ByteStride != 16 {
		t.Errorf("stride = %d, want 16", doc.BufferViews[0].ByteStride)
	}
}

func TestMeshDocument_Errors(t *testing.T) {
	if _, err := SurfaceDocument("x", geometry.CreateCube(), geometry.DrawMode(42)); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}
	if _, err := SurfaceDocument("x", geometry.NewSurface(vertex.Standard), geometry.Triangles); !errors.Is(err, geometry.ErrEmptyGeometry) {
		t.Errorf("expected ErrEmptyGeometry, got %v", err)
	}

	bad := geometry.CreatePlane(1, 1)
	bad.AddTriangle(0, 1, 9)
	if _, err := SurfaceDocument("x", bad, geometry.Triangles); !errors.Is(err, geometry.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSurfaceDocument_DuplicateAttribute(t *testing.T) {
	s := geometry.NewSurface(vertex.Position | vertex.FloatColor | vertex.Color)
	s.AddVertex(geometry.VertexOptions{})
	s.AddVertex(geometry.VertexOptions{})
	s.AddVertex(geometry.VertexOptions{})
	s.AddTriangle(0, 1, 2)

	if _, err := SurfaceDocument("tri", s, geometry.Triangles); !errors.Is(err, vertex.ErrInvalidVertexFormat) {
		t.Errorf("expected ErrInvalidVertexFormat, got %v", err)
	}
}

func TestMeshDocument_MultipleSurfaces(t *testing.T) {
	m := geometry.NewMesh("scene", geometry.CreateCube(), geometry.CreatePlane(5, 5))
	doc, err := MeshDocument(m, geometry.Triangles)
	if err != nil {
		t.Fatalf("MeshDocument failed: %v", err)
	}
	if len(doc.Meshes[0].Primitives) != 2 {
		t.Errorf("expected 2 primitives, got %d", len(doc.Meshes[0].Primitives))
	}
	if len(doc.BufferViews) != 4 {
		t.Errorf("expected 4 buffer views, got %d", len(doc.BufferViews))
	}
	for i, bv := range doc.BufferViews {
		if bv.ByteOffset%4 != 0 {
			t.Errorf("view %d misaligned at %d", i, bv.ByteOffset)
		}
	}
	if doc.Nodes[0].Name != "scene" || len(doc.Scenes[0].Nodes) != 1 {
		t.Errorf("unexpected node layout")
	}
}

func TestEncodeDecode(t *testing.T) {
	doc, err := SurfaceDocument("cube", geometry.CreateCube(), geometry.Triangles)
	if err != nil {
		t.Fatal(err)
	}

	for _, glb := range []bool{true, false} {
		var buf bytes.Buffer
		if err := Encode(&buf, doc, glb); err != nil {
			t.Fatalf("Encode(glb=%v) failed: %v", glb, err)
		}

		var got gltf.Document
		if err := gltf.NewDecoder(&buf).Decode(&got); err != nil {
			t.Fatalf("Decode(glb=%v) failed: %v", glb, err)
		}
		if len(got.Accessors) != len(doc.Accessors) || len(got.Meshes) != 1 {
			t.Errorf("glb=%v: round trip lost data", glb)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cube.glb", "cube.gltf"} {
		doc, err := SurfaceDocument("cube", geometry.CreateCube(), geometry.Triangles)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, name)
		if err := WriteFile(doc, path); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}

		got, err := gltf.Open(path)
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", name, err)
		}
		if len(got.Buffers) != 1 || got.Buffers[0].ByteLength != doc.Buffers[0].ByteLength {
			t.Errorf("%s: buffer not preserved", name)
		}
	}

	if !IsBinary("a/B.GLB") || IsBinary("a.gltf") {
		t.Error("IsBinary misclassified extensions")
	}
}
