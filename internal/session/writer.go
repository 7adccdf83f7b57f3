package session

import (
	"log/slog"
	"net/http"

	"github.com/adamkadda/bank-demo/internal/logging"
)

type sessionWriter struct {
	http.ResponseWriter
	request   *http.Request
	session   *Session
	manager   *SessionManager
	cookieSet bool
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.writeCookieOnce()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.writeCookieOnce()
	return w.ResponseWriter.Write(b)
}

// Headers are frozen once the status line goes out, so the cookie is
// decided at the first write. Pass the underlying writer to avoid
// recursing into ourselves.
func (w *sessionWriter) writeCookieOnce() {
	if w.cookieSet {
		return
	}
	w.cookieSet = true

	if !w.session.Dirty() {
		return
	}

	if err := w.manager.WriteCookie(w.ResponseWriter, w.session); err != nil {
		logging.GetLogger(w.request).Error("Could not write session cookie",
			slog.String("error", err.Error()),
		)
	}
}
