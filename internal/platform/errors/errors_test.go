package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeMusicEmptyPool, "no tracks for mood")
	target := New(CodeMusicEmptyPool, "different message")

	if !stderrors.Is(err, target) {
		t.Fatal("expected errors with the same code to match")
	}
	other := New(CodeSFXUnmappedCue, "missing cue")
	if stderrors.Is(err, other) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodePlaylogAppendFailed, "append journal entry", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found in chain")
	}
	if err.Error() != "append journal entry" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"domain error", New(CodeSceneUnknownValue, "bad value"), CodeSceneUnknownValue},
		{"wrapped domain error", fmt.Errorf("outer: %w", New(CodeNotFound, "missing")), CodeNotFound},
		{"plain error", stderrors.New("plain"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetCode(tc.err); got != tc.want {
				t.Fatalf("expected code %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeSceneUnknownValue, codes.InvalidArgument},
		{CodeMusicEmptyPool, codes.FailedPrecondition},
		{CodeSFXUnmappedCue, codes.NotFound},
		{CodePlaybackUnavailable, codes.Unavailable},
		{CodePlaylogOpenFailed, codes.Internal},
		{Code("SOMETHING_ELSE"), codes.Unknown},
	}
	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.want {
			t.Fatalf("code %q: expected %v, got %v", tc.code, tc.want, got)
		}
	}
}

func TestHandleErrorMasksUnknownErrors(t *testing.T) {
	err := HandleError(stderrors.New("internal detail"))
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.Internal {
		t.Fatalf("expected Internal, got %v", st.Code())
	}
	if st.Message() == "internal detail" {
		t.Fatal("internal detail should not leak to clients")
	}
}

func TestHandleErrorConvertsDomainErrors(t *testing.T) {
	err := HandleError(WithMetadata(CodeSFXUnmappedCue, "no mapping for cue", map[string]string{"category": "venue"}))
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected a gRPC status error")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", st.Code())
	}
}
