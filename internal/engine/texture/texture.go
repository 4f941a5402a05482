package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
)

// Texture is a 2D texture with mipmaps.
type Texture struct {
	ID     uint32
	Name   string
	Width  int
	Height int
}

// Load decodes an image file, flips it for GL and uploads it.
func Load(path string) (*Texture, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	FlipVertical(img)
	return Upload(path, img)
}

// Upload creates a texture from RGBA pixels. Rows are taken bottom-up.
func Upload(name string, img *image.RGBA) (*Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture %s: empty image", name)
	}

	t := &Texture{Name: name, Width: w, Height: h}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Info("texture loaded",
		zap.String("name", name),
		zap.Uint32("id", t.ID),
		zap.Int("width", w),
		zap.Int("height", h),
	)
	return t, nil
}

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
