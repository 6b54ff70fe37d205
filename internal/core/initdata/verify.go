package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// DefaultMaxAge is how long a signed payload stays valid
const DefaultMaxAge = 24 * time.Hour

// webAppKeyLabel keys the Mini App secret derivation
const webAppKeyLabel = "WebAppData"

var (
	// ErrMissingSignature means the payload carried no hash
	ErrMissingSignature = errors.New("initdata: missing signature")

	// ErrSignatureMismatch means the hash does not match the payload
	ErrSignatureMismatch = errors.New("initdata: signature mismatch")

	// ErrInvalidAuthDate means auth_date is absent, zero or not an integer
	ErrInvalidAuthDate = errors.New("initdata: missing or invalid auth_date")

	// ErrExpired means the payload is older than the allowed window
	ErrExpired = errors.New("initdata: auth data expired")

	// ErrMalformed means the blob could not be decoded
	ErrMalformed = errors.New("initdata: malformed payload")
)

// DeriveKey returns SHA-256(token), the signing key for payloads
func DeriveKey(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// DeriveWebAppKey returns HMAC-SHA256("WebAppData", token), the Mini App key scheme
func DeriveWebAppKey(token string) []byte {
	m := hmac.New(sha256.New, []byte(webAppKeyLabel))
	m.Write([]byte(token))
	return m.Sum(nil)
}

// Sign computes the lowercase hex HMAC-SHA256 of the payload's data check string
func Sign(p Payload, key []byte) string {
	m := hmac.New(sha256.New, key)
	m.Write([]byte(p.DataCheckString()))
	return hex.EncodeToString(m.Sum(nil))
}

// Verify checks integrity then freshness of p. It never mutates p
// Checks run in order: hash present, hash matches, auth_date valid, not expired
func Verify(p Payload, key []byte, now time.Time, maxAge time.Duration) error {
	got, ok := p.Hash()
	if !ok {
		return ErrMissingSignature
	}
	want := Sign(p, key)
	if !hmac.Equal([]byte(want), []byte(got)) {
		return ErrSignatureMismatch
	}

	authDate, ok := p.AuthDate()
	if !ok {
		return ErrInvalidAuthDate
	}
	if now.Unix()-authDate > int64(maxAge/time.Second) {
		return ErrExpired
	}
	return nil
}
