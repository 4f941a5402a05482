package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrFileNotFound         = errors.New("file not found")
	ErrMalformedFace        = errors.New("malformed face")
	ErrUnsupportedFaceArity = errors.New("unsupported face arity")
	ErrMalformedAttribute   = errors.New("malformed attribute")
)

// maxOBJLine bounds a single line of input.
const maxOBJLine = 1 << 20

// OBJRef is one resolved face corner. Indices are 0-based; -1 marks a
// reference that was omitted (v//n or v/t).
type OBJRef struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJFace is a triangle of three corners.
type OBJFace [3]OBJRef

// OBJGroup is a run of faces under one `o` or `g` name.
// Faces before the first name belong to a group with an empty name.
type OBJGroup struct {
	Name  string
	Faces []OBJFace
}

// OBJ is a parsed Wavefront OBJ file restricted to positions, texture
// coordinates, normals and triangular faces.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Groups    []OBJGroup
}

// FaceCount returns the number of faces over all groups.
func (o *OBJ) FaceCount() int {
	n := 0
	for _, g := range o.Groups {
		n += len(g.Faces)
	}
	return n
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses OBJ text. Unknown statements and comments are skipped.
// Face references resolve against the attribute lists read so far, so a face
// may not point at a vertex defined further down the file.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	group := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var p [3]float32
			err = parseFloats(fields[1:], p[:], 3)
			obj.Positions = append(obj.Positions, p)
		case "vt":
			var t [2]float32
			err = parseFloats(fields[1:], t[:], 1)
			obj.TexCoords = append(obj.TexCoords, t)
		case "vn":
			var n [3]float32
			err = parseFloats(fields[1:], n[:], 3)
			obj.Normals = append(obj.Normals, n)
		case "o", "g":
			obj.Groups = append(obj.Groups, OBJGroup{Name: strings.Join(fields[1:], " ")})
			group = len(obj.Groups) - 1
		case "f":
			var face OBJFace
			face, err = obj.parseFace(fields[1:])
			if err == nil {
				if group < 0 {
					obj.Groups = append(obj.Groups, OBJGroup{})
					group = 0
				}
				obj.Groups[group].Faces = append(obj.Groups[group].Faces, face)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	groups := obj.Groups[:0]
	for _, g := range obj.Groups {
		if len(g.Faces) > 0 {
			groups = append(groups, g)
		}
	}
	obj.Groups = groups
	return obj, nil
}

// parseFloats fills dst from args. At least need values must be present;
// missing trailing values stay zero and extra values are ignored.
func parseFloats(args []string, dst []float32, need int) error {
	if len(args) < need {
		return fmt.Errorf("%w: want %d values, got %d", ErrMalformedAttribute, need, len(args))
	}
	for i := range dst {
		if i >= len(args) {
			break
		}
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedAttribute, args[i])
		}
		dst[i] = float32(f)
	}
	return nil
}

func (o *OBJ) parseFace(args []string) (OBJFace, error) {
	var face OBJFace
	if len(args) != 3 {
		return face, fmt.Errorf("%w: %d vertices, only triangles are supported", ErrUnsupportedFaceArity, len(args))
	}
	for i, arg := range args {
		ref, err := o.parseRef(arg)
		if err != nil {
			return face, err
		}
		face[i] = ref
	}
	return face, nil
}

// parseRef resolves one of v, v/t, v//n or v/t/n.
func (o *OBJ) parseRef(s string) (OBJRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJRef{}, fmt.Errorf("%w: %q", ErrMalformedFace, s)
	}

	ref := OBJRef{TexCoord: -1, Normal: -1}
	var err error
	if ref.Position, err = resolveIndex(parts[0], len(o.Positions), "position"); err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.TexCoord, err = resolveIndex(parts[1], len(o.TexCoords), "texcoord"); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 {
		if parts[2] == "" {
			return ref, fmt.Errorf("%w: %q has an empty normal index", ErrMalformedFace, s)
		}
		if ref.Normal, err = resolveIndex(parts[2], len(o.Normals), "normal"); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// resolveIndex turns a 1-based or negative relative OBJ index into a 0-based
// index into a list of n entries.
func resolveIndex(s string, n int, kind string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s index %q", ErrMalformedFace, kind, s)
	}
	idx := i - 1
	if i < 0 {
		idx = n + i
	}
	if i == 0 || idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %s index %d out of range (%d defined)", ErrMalformedFace, kind, i, n)
	}
	return idx, nil
}
