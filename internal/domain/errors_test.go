package domain

import (
	"errors"
	"testing"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"malformed input", NewMalformedInput("unterminated quote"), ExitRejected},
		{"policy rejection", NewPolicyRejected("dangerous"), ExitRejected},
		{"timeout", ErrExecutionTimeout, ExitTimeout},
		{"execution failure", ErrExecutionFailed, ExitExecutionFailed},
		{"internal", NewInternalError("boom"), ExitInternalError},
		{"unknown error", errors.New("mystery"), ExitInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCodeFor(tc.err); got != tc.want {
				t.Fatalf("ExitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrappersPreserveSentinels(t *testing.T) {
	if !errors.Is(NewMalformedInput("x"), ErrMalformedInput) {
		t.Fatal("NewMalformedInput must wrap ErrMalformedInput")
	}
	if !errors.Is(NewPolicyRejected("x"), ErrPolicyRejected) {
		t.Fatal("NewPolicyRejected must wrap ErrPolicyRejected")
	}
	if !errors.Is(NewInternalError("x"), ErrInternal) {
		t.Fatal("NewInternalError must wrap ErrInternal")
	}
}
