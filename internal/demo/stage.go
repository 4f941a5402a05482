package demo

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/demo/shaders"
	"github.com/Faultbox/lumen/internal/engine/debug"
	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/internal/engine/lighting"
	"github.com/Faultbox/lumen/internal/engine/shader"
	"github.com/Faultbox/lumen/internal/engine/texture"
	"github.com/Faultbox/lumen/internal/logger"
)

// Bounds overlay color.
var boundsColor = mgl32.Vec3{1, 1, 0}

// Assets names the files a scene loads. Empty paths fall back to built-ins.
type Assets struct {
	OBJPath     string
	TexturePath string
}

// Stage is a scene with its GPU resources.
type Stage struct {
	def     Definition
	world   *world
	objects []Object
	program *shader.Program
	texture *texture.Texture
	log     *zap.Logger

	overlay    *shader.Program
	boxes      map[Shape]*geometry.Surface
	showBounds bool
}

// NewStage compiles the scene program and uploads its geometry to dev.
// It needs a current GL context.
func NewStage(def Definition, dev geometry.Device, assets Assets) (*Stage, error) {
	s := &Stage{
		def:   def,
		boxes: make(map[Shape]*geometry.Surface),
		log:   logger.Named("scene").With(zap.String("scene", def.Name)),
	}

	objPath := ""
	if def.Textured {
		objPath = assets.OBJPath
	}
	w, err := newWorld(objPath)
	if err != nil {
		return nil, err
	}
	s.world = w
	s.objects = Layout(w.model != nil)

	if err := s.init(dev, assets); err != nil {
		s.Close()
		return nil, err
	}

	s.log.Info("scene ready",
		zap.Int("objects", len(s.objects)),
		zap.Bool("model", w.model != nil),
		zap.Bool("textured", s.texture != nil),
	)
	return s, nil
}

func (s *Stage) init(dev geometry.Device, assets Assets) error {
	var err error
	s.program, err = shader.New(s.def.Name, s.def.VertexShader, s.def.FragmentShader)
	if err != nil {
		return err
	}
	s.overlay, err = shader.New("bounds", shaders.AmbientVertexShader, shaders.AmbientFragmentShader)
	if err != nil {
		return err
	}

	if s.def.Textured {
		s.texture, err = loadTexture(assets.TexturePath)
		if err != nil {
			return err
		}
	}

	if err := s.world.build(dev); err != nil {
		return err
	}

	lo, hi := s.world.cube.Bounds()
	s.boxes[ShapeCube] = debug.BoundsBox(lo, hi, debug.DefaultBoxPadding)
	if s.world.model != nil {
		lo, hi = s.world.model.Bounds()
		s.boxes[ShapeModel] = debug.BoundsBox(lo, hi, debug.DefaultBoxPadding)
	}
	for shape, box := range s.boxes {
		if err := box.Build(dev); err != nil {
			return fmt.Errorf("build bounds of shape %d: %w", shape, err)
		}
	}
	return nil
}

func loadTexture(path string) (*texture.Texture, error) {
	if path == "" {
		img := Checker(256, 8, color.RGBA{200, 200, 200, 255}, color.RGBA{90, 90, 90, 255})
		return texture.Upload("checker", img)
	}
	t, err := texture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return t, nil
}

// Name returns the scene name.
func (s *Stage) Name() string { return s.def.Name }

// Bounds returns the box an orbit camera should frame.
func (s *Stage) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return s.world.bounds(s.objects)
}

// ToggleBounds switches the bounding box overlay on or off.
func (s *Stage) ToggleBounds() {
	s.showBounds = !s.showBounds
}

// Draw renders every object at t seconds with the given camera matrices.
func (s *Stage) Draw(view, projection mgl32.Mat4, eye mgl32.Vec3, t float32) error {
	p := s.program
	p.Use()
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)

	s.def.Lighting.Apply(p, eye)
	if s.texture != nil {
		s.texture.Bind(0)
		p.SetInt("tex", 0)
	}

	for _, o := range s.objects {
		p.SetMat4("model", o.Model(t))
		if !s.def.Textured {
			p.SetVec3("color", o.Color)
		}
		if err := s.world.draw(o.Shape); err != nil {
			return err
		}
	}

	if s.showBounds {
		return s.drawBounds(view, projection, t)
	}
	return nil
}

func (s *Stage) drawBounds(view, projection mgl32.Mat4, t float32) error {
	p := s.overlay
	p.Use()
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)
	lighting.PointLight{Color: mgl32.Vec3{1, 1, 1}, Ambient: 1}.Apply(p, mgl32.Vec3{})
	p.SetVec3("color", boundsColor)

	for _, o := range s.objects {
		box, ok := s.boxes[o.Shape]
		if !ok {
			continue
		}
		p.SetMat4("model", o.Model(t))
		if err := box.Render(geometry.Lines); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the programs, texture and geometry.
func (s *Stage) Close() {
	for shape, box := range s.boxes {
		box.Release()
		delete(s.boxes, shape)
	}
	if s.world != nil {
		s.world.release()
		s.world = nil
	}
	if s.texture != nil {
		s.texture.Delete()
		s.texture = nil
	}
	for _, p := range []*shader.Program{s.program, s.overlay} {
		if p != nil {
			p.Delete()
		}
	}
	s.program, s.overlay = nil, nil
}
