package session

import (
	"encoding/json"

	"github.com/adamkadda/bank-demo/internal/cookies"
)

// Session is held entirely by the client in a signed cookie. The
// server keeps no session table.
type Session struct {
	user      string
	csrfToken string

	// dirty marks a session whose cookie must be rewritten.
	dirty bool

	// cleared marks a session whose cookie must be expired.
	cleared bool
}

type payload struct {
	User      string `json:"user,omitempty"`
	CSRFToken string `json:"csrf,omitempty"`
}

func (s *Session) User() string {
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.user != ""
}

// Login binds the session to user. A change of permissions drops any
// token issued to the previous identity.
func (s *Session) Login(user string) {
	s.user = user
	s.csrfToken = ""
	s.cleared = false
	s.dirty = true
}

func (s *Session) Logout() {
	s.user = ""
	s.csrfToken = ""
	s.cleared = true
	s.dirty = true
}

func (s *Session) CSRFToken() string {
	return s.csrfToken
}

func (s *Session) SetCSRFToken(token string) {
	s.csrfToken = token
	s.dirty = true
}

func (s *Session) Dirty() bool {
	return s.dirty
}

// Codec turns sessions into signed cookie values and back.
type Codec struct {
	name      string
	secretKey []byte
}

func NewCodec(name string, secretKey []byte) *Codec {
	return &Codec{
		name:      name,
		secretKey: secretKey,
	}
}

func (c *Codec) marshal(s *Session) (string, error) {
	body, err := json.Marshal(payload{
		User:      s.user,
		CSRFToken: s.csrfToken,
	})
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Encode produces the value a Set-Cookie header would carry for s.
func (c *Codec) Encode(s *Session) (string, error) {
	value, err := c.marshal(s)
	if err != nil {
		return "", err
	}

	signed := cookies.Sign(c.name, value, c.secretKey)

	return cookies.Encode(signed), nil
}

// Decode resolves a raw cookie value into a session. Anything that
// was not signed by us yields no session.
func (c *Codec) Decode(raw string) (*Session, bool) {
	if raw == "" {
		return nil, false
	}

	signed, err := cookies.Decode(raw)
	if err != nil {
		return nil, false
	}

	value, err := cookies.Verify(c.name, signed, c.secretKey)
	if err != nil {
		return nil, false
	}

	var p payload
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return nil, false
	}

	return &Session{
		user:      p.User,
		csrfToken: p.CSRFToken,
	}, true
}
