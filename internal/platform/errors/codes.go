// Package errors provides structured error handling with gRPC status mapping.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Scene errors
	CodeSceneUnknownValue   Code = "SCENE_UNKNOWN_VALUE"
	CodeSceneInvalidDomain  Code = "SCENE_INVALID_DOMAIN"
	CodeSceneVocabMalformed Code = "SCENE_VOCAB_MALFORMED"

	// Music errors
	CodeMusicEmptyMood        Code = "MUSIC_EMPTY_MOOD"
	CodeMusicEmptyPool        Code = "MUSIC_EMPTY_POOL"
	CodeMusicInvalidIntensity Code = "MUSIC_INVALID_INTENSITY"
	CodeMusicJumpscareActive  Code = "MUSIC_JUMPSCARE_ACTIVE"

	// SFX errors
	CodeSFXUnmappedCue     Code = "SFX_UNMAPPED_CUE"
	CodeSFXInvalidChannel  Code = "SFX_INVALID_CHANNEL"
	CodeSFXEmptyCategory   Code = "SFX_EMPTY_CATEGORY"

	// Playback errors
	CodePlaybackFailed      Code = "PLAYBACK_FAILED"
	CodePlaybackUnavailable Code = "PLAYBACK_UNAVAILABLE"

	// Play journal errors
	CodePlaylogOpenFailed   Code = "PLAYLOG_OPEN_FAILED"
	CodePlaylogAppendFailed Code = "PLAYLOG_APPEND_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeSceneUnknownValue,
		CodeSceneInvalidDomain,
		CodeMusicEmptyMood,
		CodeMusicInvalidIntensity,
		CodeSFXEmptyCategory,
		CodeSFXInvalidChannel,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeMusicEmptyPool,
		CodeMusicJumpscareActive:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeSFXUnmappedCue:
		return codes.NotFound

	// Unavailable - dependency failures
	case CodePlaybackUnavailable:
		return codes.Unavailable

	// Internal - infrastructure failures
	case CodeSceneVocabMalformed,
		CodePlaybackFailed,
		CodePlaylogOpenFailed,
		CodePlaylogAppendFailed:
		return codes.Internal
	}
	return codes.Unknown
}
