package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/tmpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenWriter accepts a status line but fails every body write, like
// a client that hung up mid response.
type brokenWriter struct {
	header   http.Header
	statuses []int
}

func (w *brokenWriter) Header() http.Header {
	return w.header
}

func (w *brokenWriter) WriteHeader(status int) {
	w.statuses = append(w.statuses, status)
}

func (w *brokenWriter) Write(b []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRenderWriteFailureSendsOneStatus(t *testing.T) {
	templates, err := tmpl.Load()
	require.NoError(t, err)

	d := NewDispatcher(NewCSRFErrorResponder(templates))
	login := NewLoginHandler(nil, templates, d)

	w := &brokenWriter{header: make(http.Header)}
	h := logging.Middleware()(d.Handle(login.loginGET))
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, []int{http.StatusOK}, w.statuses)
	assert.Equal(t, "text/html; charset=utf-8", w.header.Get("Content-Type"))
}

func TestRenderUnknownPageReturnsError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	err := render(rec, r, tmpl.TemplateMap{}, http.StatusOK, "login", nil)

	assert.Error(t, err)
	assert.Empty(t, rec.Header().Get("Content-Type"))
	assert.Zero(t, rec.Body.Len())
}
