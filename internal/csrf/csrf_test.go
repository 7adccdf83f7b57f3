package csrf

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/adamkadda/bank-demo/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(token string) *http.Request {
	form := url.Values{"to": {"hacker"}, "amount": {"100"}}
	if token != "" {
		form.Set(FieldName, token)
	}

	r := httptest.NewRequest(http.MethodPost, "/transfer-csrf", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func loggedIn() *session.Session {
	s := &session.Session{}
	s.Login("alice")
	return s
}

func TestIssueHasEnoughEntropy(t *testing.T) {
	token := Issue(loggedIn())

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw)*8, 128)
}

func TestIssueIsUnpredictable(t *testing.T) {
	s := loggedIn()
	assert.NotEqual(t, Issue(s), Issue(s))
}

func TestValidateAcceptsIssuedToken(t *testing.T) {
	s := loggedIn()
	token := Issue(s)

	assert.NoError(t, Validate(s, post(token)))
}

func TestValidateAcceptsHeader(t *testing.T) {
	s := loggedIn()
	token := Issue(s)

	r := post("")
	r.Header.Set(HeaderName, token)

	assert.NoError(t, Validate(s, r))
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(s *session.Session) string{
		"missing": func(s *session.Session) string { Issue(s); return "" },
		"wrong":   func(s *session.Session) string { Issue(s); return "guess" },
		"not issued": func(s *session.Session) string {
			return generateToken()
		},
		"reissued": func(s *session.Session) string {
			old := Issue(s)
			Issue(s)
			return old
		},
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			s := loggedIn()
			token := setup(s)

			assert.ErrorIs(t, Validate(s, post(token)), ErrTokenInvalid)
		})
	}
}

func TestValidateConsumesToken(t *testing.T) {
	s := loggedIn()
	token := Issue(s)

	require.NoError(t, Validate(s, post(token)))
	assert.Empty(t, s.CSRFToken())
	assert.ErrorIs(t, Validate(s, post(token)), ErrTokenInvalid)
}
