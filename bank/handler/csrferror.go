package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/tmpl"
)

const csrfErrorMessage = "Invalid CSRF token"

// ISO 8601 in UTC with milliseconds, e.g. 2024-05-01T12:00:00.000Z.
const csrfErrorTimeFormat = "2006-01-02T15:04:05.000Z07:00"

type csrfErrorDetails struct {
	Error   string  `json:"error"`
	Status  int     `json:"status"`
	Method  string  `json:"method"`
	Path    string  `json:"path"`
	Origin  *string `json:"origin"`
	Referer *string `json:"referer"`
	Time    string  `json:"time"`
}

// csrfErrorPage holds the same details for the HTML page. The template
// engine escapes every field; Origin, Referer and Path are attacker
// controlled.
type csrfErrorPage struct {
	Method  string
	Path    string
	Origin  string
	Referer string
	Time    string
}

// CSRFErrorResponder answers rejected CSRF tokens with a 403, as JSON
// for API clients and as an HTML page for browsers.
type CSRFErrorResponder struct {
	templates tmpl.TemplateMap
	now       func() time.Time
}

func NewCSRFErrorResponder(templates tmpl.TemplateMap) *CSRFErrorResponder {
	return &CSRFErrorResponder{
		templates: templates,
		now:       time.Now,
	}
}

func headerOrNil(r *http.Request, key string) *string {
	value := r.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (e *CSRFErrorResponder) Respond(w http.ResponseWriter, r *http.Request) {
	details := csrfErrorDetails{
		Error:   csrfErrorMessage,
		Status:  http.StatusForbidden,
		Method:  r.Method,
		Path:    r.URL.RequestURI(),
		Origin:  headerOrNil(r, "Origin"),
		Referer: headerOrNil(r, "Referer"),
		Time:    e.now().UTC().Format(csrfErrorTimeFormat),
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		respondJSON(w, r, http.StatusForbidden, details)
		return
	}

	page := csrfErrorPage{
		Method:  details.Method,
		Path:    details.Path,
		Origin:  orDash(details.Origin),
		Referer: orDash(details.Referer),
		Time:    details.Time,
	}

	err := render(w, r, e.templates, http.StatusForbidden, "csrf_error", page)
	if err != nil {
		logging.GetLogger(r).Warn("CSRF error page unavailable",
			slog.String("error", err.Error()),
		)
		respondText(w, http.StatusForbidden, csrfErrorMessage)
	}
}
