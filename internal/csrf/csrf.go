// Package csrf implements the synchronizer token pattern on top of the
// cookie session: a random token is bound to the session when a form
// is rendered and must come back with the submission.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/adamkadda/bank-demo/internal/session"
)

const (
	FieldName  = "csrfToken"
	HeaderName = "X-CSRF-Token"
)

var ErrTokenInvalid = errors.New("invalid CSRF token")

func generateToken() string {
	token := make([]byte, 32)

	_, err := io.ReadFull(rand.Reader, token)
	if err != nil {
		panic("somehow failed to generate CSRF token")
	}

	return base64.RawURLEncoding.EncodeToString(token)
}

// Issue binds a fresh token to s. Any token issued earlier stops
// being accepted.
func Issue(s *session.Session) string {
	token := generateToken()
	s.SetCSRFToken(token)

	return token
}

// Validate checks the submitted token against the one bound to s and
// consumes it on success, so every token is good for one submission.
func Validate(s *session.Session, r *http.Request) error {
	sessionToken := s.CSRFToken()
	if sessionToken == "" {
		return ErrTokenInvalid
	}

	requestToken := r.PostFormValue(FieldName)
	if requestToken == "" {
		requestToken = r.Header.Get(HeaderName)
	}

	if len(sessionToken) != len(requestToken) {
		return ErrTokenInvalid
	}

	if subtle.ConstantTimeCompare([]byte(sessionToken), []byte(requestToken)) != 1 {
		return ErrTokenInvalid
	}

	Consume(s)

	return nil
}

func Consume(s *session.Session) {
	s.SetCSRFToken("")
}
