package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/adamkadda/bank-demo/internal/config"
	"github.com/adamkadda/bank-demo/internal/cookies"
	"github.com/adamkadda/bank-demo/internal/logging"
)

type SessionManager struct {
	codec      *Codec
	cookieName string
	domain     string
	sameSite   http.SameSite
	secure     bool
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	return &SessionManager{
		codec:      NewCodec(cfg.CookieName, cfg.SecretKey),
		cookieName: cfg.CookieName,
		domain:     cfg.Domain,
		sameSite:   cfg.SameSite,
		secure:     cfg.Secure,
	}
}

func (m *SessionManager) Codec() *Codec {
	return m.codec
}

type sessionContextKey struct{}

var sessionKey = sessionContextKey{}

func (m *SessionManager) start(r *http.Request) (*Session, *http.Request) {
	var raw string
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		raw = cookie.Value
	}

	session, ok := m.codec.Decode(raw)
	if !ok {
		if raw != "" {
			logging.GetLogger(r).Debug("Discarded unverifiable session cookie")
		}
		session = &Session{}
	}

	ctx := context.WithValue(r.Context(), sessionKey, session)
	r = r.WithContext(ctx)

	return session, r
}

func GetSession(r *http.Request) *Session {
	session, ok := r.Context().Value(sessionKey).(*Session)
	if !ok {
		panic("could not find session in context")
	}

	return session
}

// WriteCookie reflects session changes onto the response. Cleared
// sessions get an expired cookie.
func (m *SessionManager) WriteCookie(w http.ResponseWriter, session *Session) error {
	cookie := http.Cookie{
		Name:     m.cookieName,
		Domain:   m.domain,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}

	if session.cleared {
		cookie.MaxAge = -1
		return cookies.Set(w, cookie)
	}

	value, err := m.codec.Encode(session)
	if err != nil {
		return err
	}
	cookie.Value = value

	return cookies.Set(w, cookie)
}

func Middleware(m *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, r := m.start(r)

			sw := &sessionWriter{
				ResponseWriter: w,
				request:        r,
				session:        session,
				manager:        m,
			}

			sw.Header().Add("Vary", "Cookie")
			sw.Header().Add("Cache-Control", "no-cache")

			next.ServeHTTP(sw, r)

			// Handlers that never wrote a body still need their cookie.
			sw.writeCookieOnce()

			if session.Dirty() {
				logging.GetLogger(r).Debug("Session saved",
					slog.Bool("authenticated", session.Authenticated()),
					slog.Bool("cleared", session.cleared),
				)
			}
		})
	}
}
