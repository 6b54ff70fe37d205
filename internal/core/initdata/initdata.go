// Package initdata parses and verifies Telegram Mini App initData payloads
package initdata

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// KeyHash carries the hex HMAC of the remaining fields
	KeyHash = "hash"

	// KeyAuthDate carries the Unix time the payload was issued
	KeyAuthDate = "auth_date"

	// KeyUser carries the JSON encoded Telegram user
	KeyUser = "user"
)

// Payload is the decoded key value form of an initData query string
type Payload map[string]string

// User is the Telegram user object embedded in the signed payload
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// Parse decodes a query-string encoded initData blob
// repeated keys keep their first value
func Parse(raw string) (Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingSignature
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return nil, ErrMalformed
	}
	p := make(Payload, len(vals))
	for k, vv := range vals {
		if len(vv) > 0 {
			p[k] = vv[0]
		}
	}
	return p, nil
}

// Hash returns the signature field
func (p Payload) Hash() (string, bool) {
	h, ok := p[KeyHash]
	return h, ok && h != ""
}

// AuthDate returns the issue time in Unix seconds, ok=false when absent, zero or unparseable
func (p Payload) AuthDate() (int64, bool) {
	s, ok := p[KeyAuthDate]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// DataCheckString renders every field except hash as sorted key=value lines
func (p Payload) DataCheckString() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k == KeyHash {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}
	return b.String()
}

// User decodes the signed user field. ok=false when the payload has none
func (p Payload) User() (User, bool, error) {
	raw, ok := p[KeyUser]
	if !ok || strings.TrimSpace(raw) == "" {
		return User{}, false, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, false, ErrMalformed
	}
	return u, true, nil
}

// Encode renders the payload back to a query string (keys sorted)
func (p Payload) Encode() string {
	v := url.Values{}
	for k, s := range p {
		v.Set(k, s)
	}
	return v.Encode()
}
