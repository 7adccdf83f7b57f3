package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adamkadda/bank-demo/internal/csrf"
	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/tmpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatch(t *testing.T, d *Dispatcher, r *http.Request, err error) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h := logging.Middleware()(d.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return err
	}))
	h.ServeHTTP(rec, r)

	return rec
}

func newResponder(t *testing.T) *CSRFErrorResponder {
	t.Helper()

	templates, err := tmpl.Load()
	require.NoError(t, err)

	e := NewCSRFErrorResponder(templates)
	e.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	return e
}

func TestCSRFErrorPageEscapesHeaders(t *testing.T) {
	d := NewDispatcher(newResponder(t))

	r := httptest.NewRequest(http.MethodPost, "/transfer-csrf?next=<img>", nil)
	r.Header.Set("Referer", "<script>alert(1)</script>")
	r.Header.Set("Origin", `"><svg onload=alert(2)>`)

	rec := dispatch(t, d, r, csrf.ErrTokenInvalid)
	body := rec.Body.String()

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, "<svg")
	assert.NotContains(t, body, "<img>")
	assert.Contains(t, body, "2024-05-01T12:00:00.000Z")
}

func TestCSRFErrorPageShowsDashForMissingHeaders(t *testing.T) {
	d := NewDispatcher(newResponder(t))

	rec := dispatch(t, d, httptest.NewRequest(http.MethodPost, "/transfer-csrf", nil), csrf.ErrTokenInvalid)

	assert.Contains(t, rec.Body.String(), "<dt>Origin</dt><dd>-</dd>")
	assert.Contains(t, rec.Body.String(), "<dt>Referer</dt><dd>-</dd>")
}

func TestCSRFErrorJSON(t *testing.T) {
	d := NewDispatcher(newResponder(t))

	r := httptest.NewRequest(http.MethodPost, "/transfer-csrf", nil)
	r.Header.Set("Accept", "application/json, text/plain")
	r.Header.Set("Referer", "<script>alert(1)</script>")

	rec := dispatch(t, d, r, csrf.ErrTokenInvalid)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{
		"error": "Invalid CSRF token",
		"status": 403,
		"method": "POST",
		"path": "/transfer-csrf",
		"origin": null,
		"referer": "<script>alert(1)</script>",
		"time": "2024-05-01T12:00:00.000Z"
	}`, rec.Body.String())
}

func TestCSRFErrorFallsBackWithoutTemplate(t *testing.T) {
	d := NewDispatcher(NewCSRFErrorResponder(tmpl.TemplateMap{}))

	rec := dispatch(t, d, httptest.NewRequest(http.MethodPost, "/transfer-csrf", nil), csrf.ErrTokenInvalid)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid CSRF token", rec.Body.String())
}

func TestDispatcherMapsErrors(t *testing.T) {
	d := NewDispatcher(newResponder(t))

	tests := []struct {
		err    error
		status int
		body   string
	}{
		{ErrUnauthenticated, http.StatusUnauthorized, "Not logged in"},
		{ErrInvalidUsername, http.StatusBadRequest, "Invalid username"},
		{ledger.ErrInvalidAmount, http.StatusOK, "Invalid amount"},
		{ledger.ErrInvalidRecipient, http.StatusOK, "Invalid recipient"},
		{ledger.ErrInsufficientFunds, http.StatusOK, "Insufficient funds"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec := dispatch(t, d, httptest.NewRequest(http.MethodPost, "/transfer", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, int64(100), parseAmount("100"))
	assert.Equal(t, int64(100), parseAmount(" 100 "))
	assert.Equal(t, int64(-5), parseAmount("-5"))
	assert.Zero(t, parseAmount("1e2"))
	assert.Zero(t, parseAmount("ten"))
}
