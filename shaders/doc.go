// Package shaders provides the standard set of CPU shader programs for ggfx
// pipelines.
//
// Every shader embeds ggfx.ShaderBase, declares its uniforms with defaults
// in its constructor, and draws into targets that expose an *image.RGBA
// (render.PixmapTarget). Importing the package registers each shader in the
// ggfx factory registry, so serialized graphs can reconstruct them by name:
//
//	import _ "github.com/gogpu/ggfx/shaders"
//
// Pixel work is delegated to github.com/anthonynsimon/bild (blend modes,
// blurs, color adjustments and effects) and golang.org/x/image/draw
// (resampling). Colors are given as vec4 uniforms of straight-alpha
// components in [0, 1]; target pixels are premultiplied like image.RGBA.
//
// For GPU drawing into render.TextureTarget see the wgsl subpackage.
package shaders
