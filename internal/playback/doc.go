// Package playback defines the contract between the audio direction layer
// and the side-effecting playback engine.
//
// The engine itself lives outside this module: it decodes, mixes, and
// outputs audio. The direction layer only issues intents through the Backend
// interface and learns about natural track completion through a callback
// registered on the music director.
package playback
