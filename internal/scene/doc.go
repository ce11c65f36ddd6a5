// Package scene models the canonical game-state context that drives audio
// direction.
//
// Game systems report location, weather, time and mood signals as loose,
// partially-specified strings. This package normalizes those signals into a
// canonical Context using configurable enumeration and synonym tables, and
// enriches sparse contexts from a location catalog. The canonicalizer is
// stateless per call; the controller owns the running merged Context and
// feeds incremental updates through it.
package scene
