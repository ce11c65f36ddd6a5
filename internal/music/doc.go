// Package music owns background music direction: mood and intensity state,
// per-mood track rotation with fairness guarantees, context-biased track
// selection, and crossfade transitions issued to the playback backend.
//
// The director is a single mutex-guarded component constructed by the
// composition root. It never performs fades itself; it computes the
// transition and hands it to the backend. Natural track completion is
// reported back through OnTrackEnded so rotation can advance without
// polling.
package music
