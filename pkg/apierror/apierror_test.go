package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorFormatting(t *testing.T) {
	t.Parallel()

	require.Equal(t, "BAD_REQUEST: email is required (email)", BadRequest("email is required", "email").Error())
	require.Equal(t, "FORBIDDEN: admin only", Forbidden("admin only").Error())

	var nilErr *APIError
	require.Equal(t, "", nilErr.Error())
}

func TestAPIErrorUnwrapsThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("context"), NotFound("product not found", "p-1"))

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
	require.Equal(t, "NOT_FOUND", apiErr.Code)
}
