package cookies

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("0123456789abcdef0123456789abcdef")

func TestSignedRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()

	raw := Encode(Sign("session", `{"user":"alice"}`, key))
	require.NoError(t, Set(rec, http.Cookie{Name: "session", Value: raw}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	signed, err := Decode(cookies[0].Value)
	require.NoError(t, err)

	value, err := Verify("session", signed, key)
	require.NoError(t, err)
	assert.Equal(t, `{"user":"alice"}`, value)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signed := Sign("session", "alice", key)

	_, err := Verify("session", signed, []byte("another key"))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestVerifyRejectsRenamedCookie(t *testing.T) {
	signed := Sign("session", "alice", key)

	_, err := Verify("other", signed, key)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestVerifyRejectsTamperedValue(t *testing.T) {
	signed := Sign("session", "alice", key)
	tampered := signed[:len(signed)-len("alice")] + "admin"

	_, err := Verify("session", tampered, key)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestVerifyRejectsShortValue(t *testing.T) {
	_, err := Verify("session", "short", key)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDecodeRejectsBadEncoding(t *testing.T) {
	_, err := Decode("!!!")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSetRejectsOversizedValue(t *testing.T) {
	rec := httptest.NewRecorder()

	err := Set(rec, http.Cookie{Name: "session", Value: Encode(strings.Repeat("a", 4096))})
	assert.ErrorIs(t, err, ErrValueTooLong)
	assert.Empty(t, rec.Result().Cookies())
}
