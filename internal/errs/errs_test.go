package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Internal},
		{"untyped", errors.New("boom"), Internal},
		{"coded", New(NotFound, "Note not found"), NotFound},
		{"wrapped", fmt.Errorf("list: %w", New(Unauthenticated, "Please log in")), Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessageOf_HidesUntypedErrors(t *testing.T) {
	require.Equal(t, "Server Error", MessageOf(errors.New("pq: connection refused to 10.0.0.3")))
	require.Equal(t, "Note not found", MessageOf(New(NotFound, "Note not found")))

	// The cause stays reachable for server-side logs.
	cause := errors.New("disk full")
	err := Wrap(Internal, "Server Error", cause)
	require.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{InvalidArgument, http.StatusBadRequest},
		{Unauthenticated, http.StatusUnauthorized},
		{PermissionDenied, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{AlreadyExists, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
		{Code("bogus"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}
