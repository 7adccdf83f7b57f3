package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adamkadda/bank-demo/internal/csrf"
	"github.com/adamkadda/bank-demo/internal/ledger"
	"github.com/adamkadda/bank-demo/internal/logging"
	"github.com/adamkadda/bank-demo/internal/session"
	"github.com/adamkadda/bank-demo/internal/tmpl"
)

var ErrUnauthenticated = errors.New("not logged in")

// HandlerFunc reports failures instead of writing them. A Dispatcher
// turns the returned error into a response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type Dispatcher struct {
	csrf *CSRFErrorResponder
}

func NewDispatcher(csrf *CSRFErrorResponder) *Dispatcher {
	return &Dispatcher{csrf: csrf}
}

func (d *Dispatcher) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			d.respondError(w, r, err)
		}
	})
}

// Rejected transfers are answered with 200 and a plain text message,
// not an HTTP failure code.
func (d *Dispatcher) respondError(w http.ResponseWriter, r *http.Request, err error) {
	l := logging.GetLogger(r)

	switch {
	case errors.Is(err, csrf.ErrTokenInvalid):
		l.Warn("Token mismatch",
			slog.String("referer", r.Referer()),
		)
		d.csrf.Respond(w, r)
	case errors.Is(err, ErrUnauthenticated):
		l.Info("Unauthenticated request")
		respondText(w, http.StatusUnauthorized, "Not logged in")
	case errors.Is(err, ErrInvalidUsername):
		respondText(w, http.StatusBadRequest, "Invalid username")
	case errors.Is(err, ledger.ErrInvalidAmount):
		respondText(w, http.StatusOK, "Invalid amount")
	case errors.Is(err, ledger.ErrInvalidRecipient):
		respondText(w, http.StatusOK, "Invalid recipient")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondText(w, http.StatusOK, "Insufficient funds")
	default:
		l.Error("Unhandled error", slog.String("error", err.Error()))
		respondText(w, http.StatusInternalServerError, "Internal server error")
	}
}

func requireUser(r *http.Request) (*session.Session, error) {
	s := session.GetSession(r)
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	return s, nil
}

func respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write([]byte(message))
}

/*
	Pre-marshalling adds CPU and memory overhead. However it allows us
	to return the appropriate status code.
*/

func respondJSON(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	data any,
) {
	body, err := json.Marshal(data)
	if err != nil {
		l := logging.GetLogger(r)
		l.Error("Failed to marshal JSON", slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// render fully executes page before touching w, so a template error
// can still be answered with a different status. Once the header is
// out, write failures are only logged.
func render(
	w http.ResponseWriter,
	r *http.Request,
	templates tmpl.TemplateMap,
	status int,
	page string,
	data any,
) error {
	var buf bytes.Buffer
	if err := templates.Render(&buf, page, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		logging.GetLogger(r).Warn("Failed to write page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
