package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "docpod/internal/app/errors"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *APIError
		want int
	}{
		{NewValidationError("bad", nil), http.StatusUnprocessableEntity},
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewNotFoundError("podcast"), http.StatusNotFound},
		{NewUnauthorizedError("no"), http.StatusUnauthorized},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewConflictError("dup"), http.StatusConflict},
		{NewPayloadTooLargeError(10), http.StatusRequestEntityTooLarge},
		{NewUnavailableError("down"), http.StatusServiceUnavailable},
		{NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"not found", apperrors.NotFound("podcast", "1"), KindNotFound},
		{"forbidden", apperrors.Wrap(apperrors.ErrForbidden, "podcast 1"), KindForbidden},
		{"duplicate", apperrors.Wrapf(apperrors.ErrAlreadyExists, "user a@b.c"), KindConflict},
		{"bad login", apperrors.ErrInvalidLogin, KindUnauthorized},
		{"expired", apperrors.ErrSessionExpired, KindUnauthorized},
		{"unsupported", apperrors.Wrap(apperrors.ErrUnsupportedFile, ".docx"), KindBadRequest},
		{"missing artifact", apperrors.Wrap(apperrors.ErrArtifactMissing, "x.mp3"), KindNotFound},
		{"api error passes through", NewConflictError("taken"), KindConflict},
		{"unknown", fmt.Errorf("disk on fire"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err, "podcast")
			assert.Equal(t, tt.kind, got.Kind)
		})
	}

	assert.Nil(t, FromDomain(nil, "podcast"))
	assert.Equal(t, "Internal server error", FromDomain(fmt.Errorf("secret dsn"), "x").Message)
}
