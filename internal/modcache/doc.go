// Package modcache caches WGSL sources compiled to SPIR-V.
//
// Compiling WGSL with naga is the most expensive part of creating a GPU
// shader. Generator shaders with identical source share one compiled module
// through the package-level cache; the cache is bounded and evicts the
// least recently used entry.
package modcache
