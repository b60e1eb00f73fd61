package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/pkg/apierror"
)

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{model.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{model.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHORIZED"},
		{model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{model.ErrUserAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{model.ErrProductNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: Phone", model.ErrOutOfStock), http.StatusConflict, "OUT_OF_STOCK"},
		{fmt.Errorf("%w: title is required", model.ErrInvalidInput), http.StatusBadRequest, "BAD_REQUEST"},
		{apierror.New("TEAPOT", "short and stout", "", http.StatusTeapot), http.StatusTeapot, "TEAPOT"},
		{fmt.Errorf("%w: pool exhausted", model.ErrInternal), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{errors.New("something unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body model.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "pool exhausted")
		})
	}
}

func TestWriteError_InputDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: title is required", model.ErrInvalidInput))

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "title is required", body.Error.Details)
}

func TestWriteList_SetsTotalCount(t *testing.T) {
	rec := httptest.NewRecorder()
	writeList(rec, []string{"a"}, 42, 2, 10)

	assert.Equal(t, "42", rec.Header().Get("X-Total-Count"))

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, 5, body.Meta.TotalPages)

	rec = httptest.NewRecorder()
	writeList(rec, []string{}, 0, 1, 0)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
	assert.NotContains(t, rec.Body.String(), "meta")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"smartphones", "laptops"}, splitList("smartphones, ,laptops"))
}

func TestStaticHandler(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("index"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "static", "main.css"), []byte("body{}"), 0o644))
	h := NewStaticHandler(root)

	serve := func(method string, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	rec := serve(http.MethodGet, "/static/main.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = serve(http.MethodGet, "/checkout")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "index", rec.Body.String())

	rec = serve(http.MethodGet, "/../../etc/passwd")
	assert.Equal(t, "index", rec.Body.String())

	rec = serve(http.MethodDelete, "/checkout")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	empty := NewStaticHandler(t.TempDir())
	rec = httptest.NewRecorder()
	empty.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
