// Package playbacktest provides a recording Backend fake for tests.
package playbacktest

import (
	"sync"

	"github.com/hollowvale/bard/internal/playback"
)

// Call records one backend invocation.
type Call struct {
	Op       string
	State    playback.State
	Path     string
	Category string
	Channel  string
	Master   int
	Music    int
	Effects  int
	Muted    bool
	Value    float64
	RampMS   int
}

// Recorder is a playback.Backend that records every call. Individual
// operations can be made to fail by setting the corresponding error.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	ApplyStateErr   error
	PlaySFXErr      error
	PlayLoopErr     error
	StopLoopErr     error
	SetVolumesErr   error
	SetIntensityErr error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetVolumes implements playback.Backend.
func (r *Recorder) SetVolumes(master, music, effects int, muted bool) error {
	r.record(Call{Op: "set_volumes", Master: master, Music: music, Effects: effects, Muted: muted})
	return r.SetVolumesErr
}

// ApplyState implements playback.Backend.
func (r *Recorder) ApplyState(state playback.State) error {
	r.record(Call{Op: "apply_state", State: state})
	return r.ApplyStateErr
}

// PlaySFX implements playback.Backend.
func (r *Recorder) PlaySFX(path, category string) error {
	r.record(Call{Op: "play_sfx", Path: path, Category: category})
	return r.PlaySFXErr
}

// PlaySFXLoop implements playback.Backend.
func (r *Recorder) PlaySFXLoop(path, channel string) error {
	r.record(Call{Op: "play_sfx_loop", Path: path, Channel: channel})
	return r.PlayLoopErr
}

// StopSFXLoop implements playback.Backend.
func (r *Recorder) StopSFXLoop(channel string) error {
	r.record(Call{Op: "stop_sfx_loop", Channel: channel})
	return r.StopLoopErr
}

// SetIntensity implements playback.Backend.
func (r *Recorder) SetIntensity(value float64, rampMS int) error {
	r.record(Call{Op: "set_intensity", Value: value, RampMS: rampMS})
	return r.SetIntensityErr
}

// Calls returns a copy of all recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsFor returns the recorded calls for one operation.
func (r *Recorder) CallsFor(op string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, call := range r.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(call Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}
