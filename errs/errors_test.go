package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{Conflict("x"), http.StatusConflict},
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthenticated("x"), http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading project: %w", NotFound("project not found"))
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("wrapped error lost its kind")
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("tag with id %s not found", "abc")
	if err.Error() != "tag with id abc not found" {
		t.Fatalf("message = %q", err.Error())
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v", KindOf(err))
	}
}
