package geometry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/pkg/vertex"
)

// Pack interleaves the declared channels of every vertex into tightly packed
// little-endian records of Format().Stride() bytes. Byte colors are quantized
// from the stored float color.
func Pack(s *Surface) ([]byte, error) {
	f := s.Format()
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: no declared channels (mask %s)", vertex.ErrInvalidVertexFormat, f.Mask())
	}
	decls := f.Declarations()
	offsets := f.Offsets()
	stride := f.Stride()

	out := make([]byte, stride*s.VertexCount())
	for i, v := range s.Vertices() {
		rec := out[i*stride : (i+1)*stride]
		for j, d := range decls {
			dst := rec[offsets[j]:]
			switch d.Channel {
			case vertex.Position:
				putFloats(dst, v.Position[:])
			case vertex.Normal:
				putFloats(dst, v.Normal[:])
			case vertex.TexCoord1:
				putFloats(dst, v.TexCoord[:])
			case vertex.FloatColor:
				putFloats(dst, v.Color[:])
			case vertex.Color:
				putBytes(dst, v.Color)
			default:
				return nil, fmt.Errorf("%w: cannot pack %s", vertex.ErrInvalidVertexFormat, d.Channel)
			}
		}
	}
	return out, nil
}

func putFloats(dst []byte, vals []float32) {
	for k, x := range vals {
		binary.LittleEndian.PutUint32(dst[4*k:], math.Float32bits(x))
	}
}

func putBytes(dst []byte, c mgl32.Vec4) {
	for k, x := range c {
		dst[k] = uint8(math.Round(float64(mgl32.Clamp(x, 0, 1)) * 255))
	}
}
