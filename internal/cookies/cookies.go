package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
)

/*
	Helpers for every other package that reads or writes cookies.
	Values are base64url encoded so they survive any byte content.

	https://www.alexedwards.net/blog/working-with-cookies-in-go
*/

var (
	ErrValueTooLong = errors.New("cookie value too long")
	ErrInvalidValue = errors.New("invalid cookie value")
)

func Encode(value string) string {
	return base64.URLEncoding.EncodeToString([]byte(value))
}

// Decode reverses Encode.
func Decode(raw string) (string, error) {
	value, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidValue
	}

	return string(value), nil
}

// Set writes a cookie whose value is already encoded. Browsers drop
// cookies over 4096 bytes, so those are refused here instead.
func Set(w http.ResponseWriter, cookie http.Cookie) error {
	if len(cookie.String()) > 4096 {
		return ErrValueTooLong
	}

	http.SetCookie(w, &cookie)

	return nil
}

/*
	Cookies live on the client and can be edited. The HMAC prepended
	to the value lets us verify that neither the name nor the value
	changed since we set it.
*/

func Sign(name, value string, secretKey []byte) string {
	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(name))
	mac.Write([]byte(value))
	signature := mac.Sum(nil)

	return string(signature) + value
}

func Verify(name, signedValue string, secretKey []byte) (string, error) {
	if len(signedValue) < sha256.Size {
		return "", ErrInvalidValue
	}

	signature := signedValue[:sha256.Size]
	value := signedValue[sha256.Size:]

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(name))
	mac.Write([]byte(value))
	expectedSignature := mac.Sum(nil)

	if !hmac.Equal([]byte(signature), expectedSignature) {
		return "", ErrInvalidValue
	}

	return value, nil
}
