// Package serial captures ggfx graphs as portable records and replays them.
//
// Serialize runs a graph function against a scratch pipeline with
// pixel-less buffers, applies every setup closure once without drawing and
// emits one Record per shader step. Named assets keep their names;
// intermediate buffers get identifiers of the form "@n" that are only
// meaningful within one serialization.
//
// Replay builds shaders through the ggfx shader registry, so every shader
// type used by a graph must be registered, typically by importing its
// package for side effects:
//
//	import _ "github.com/gogpu/ggfx/shaders"
package serial
