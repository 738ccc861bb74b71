// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapHandlerFunc(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad address")), http.StatusBadRequest, "bad address"},
		{"not found", NotFound(errors.New("no such block")), http.StatusNotFound, "no such block"},
		{"custom", HTTPError(errors.New("teapot"), http.StatusTeapot), http.StatusTeapot, "teapot"},
		{"no cause", HTTPError(nil, http.StatusForbidden), http.StatusForbidden, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "boom"},
		{"wrapped", pkgerrors.WithMessage(NotFound(errors.New("no such block")), "blocks"), http.StatusNotFound, "blocks: no such block"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			handler := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return c.err })
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.body, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.NoError(t, WriteJSON(rec, map[string]int{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}
