package shaders

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/blend"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/render"
)

var blendModes = map[string]func(bg, fg image.Image) *image.RGBA{
	"normal":     blend.Normal,
	"multiply":   blend.Multiply,
	"screen":     blend.Screen,
	"overlay":    blend.Overlay,
	"add":        blend.Add,
	"difference": blend.Difference,
	"darken":     blend.Darken,
	"lighten":    blend.Lighten,
}

// BlendModes returns the supported blend mode names, sorted.
func BlendModes() []string {
	names := make([]string, 0, len(blendModes))
	for name := range blendModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blend composites input 1 (foreground) over input 0 (background).
//
// Uniforms:
//   - mode (string): one of BlendModes, default "normal"
//   - opacity (float): foreground weight in [0, 1], default 1
type Blend struct {
	ggfx.ShaderBase
}

// NewBlend creates a blend shader.
func NewBlend() *Blend {
	s := &Blend{ShaderBase: ggfx.NewShaderBase(NameBlend)}
	u := s.Uniforms()
	mustDeclare(u, "mode", ggfx.UniformString, "normal")
	mustDeclare(u, "opacity", ggfx.UniformFloat, 1)
	return s
}

// Draw blends the two inputs.
func (s *Blend) Draw(target render.Target, _ ggfx.Convention) error {
	dst, err := pixels(target)
	if err != nil {
		return err
	}
	bg, err := input(&s.ShaderBase, 0)
	if err != nil {
		return err
	}
	fg, err := input(&s.ShaderBase, 1)
	if err != nil {
		return err
	}
	u := s.Uniforms()
	mode := u.Text("mode")
	fn, ok := blendModes[mode]
	if !ok {
		return fmt.Errorf("%w: blend mode %q", ErrBadUniform, mode)
	}
	out := fn(bg, fg)
	if op := u.Float("opacity"); op < 1 {
		out = blend.Opacity(bg, out, float64(max(op, 0)))
	}
	store(dst, out)
	return nil
}
