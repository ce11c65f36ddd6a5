// Package sfx owns sound-effect direction: debounced context-driven
// one-shots, programmatic cue triggers, and two looped ambience channels
// (environment and weather) with scored file pools and periodic rotation.
//
// The manager mirrors the music director's shape: one mutex-guarded
// component, an injected playback backend, and a context-bound background
// worker that rotates loop ambience so long scenes never go stale.
package sfx
