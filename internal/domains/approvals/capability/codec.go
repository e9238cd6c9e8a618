// Package capability signs and verifies the stateless approval tokens that
// authorize approve/reject actions on a single order until a stated expiry.
package capability

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// ExpiryLayout is the wire form of a token expiry: UTC, whole seconds.
const ExpiryLayout = "2006-01-02T15:04:05Z"

// Codec derives bearer tokens from (orderID, expiry) pairs with a shared
// secret. A token carries no transition semantics of its own; it only proves
// the holder was handed a link for this order before the deadline.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option configures the codec.
type Option func(*Codec)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec around the shared signing secret. An empty secret
// is tolerated at construction; verification then fails closed.
func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// FormatExpiry renders an expiry in the wire form used for signing.
func FormatExpiry(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(ExpiryLayout)
}

// Sign computes the token for an (orderID, expiry) pair: HMAC-SHA256 over
// "{orderID}:{expiryISO}", URL-safe unpadded base64. Deterministic, no side
// effects.
func (c *Codec) Sign(orderID int64, expires time.Time) string {
	return c.signMessage(orderID, FormatExpiry(expires))
}

// Verify reports whether the supplied token matches the (orderID, expiry)
// pair. It fails closed when the secret is unconfigured, any input is empty,
// or the expiry is not strictly in the future. The expected token is
// recomputed over the expiry string exactly as presented and compared in
// constant time; a length mismatch is rejected before the comparison, which
// leaks only an integer length.
func (c *Codec) Verify(orderID int64, expires string, token string) bool {
	if len(c.secret) == 0 || orderID == 0 || expires == "" || token == "" {
		return false
	}
	deadline, err := time.Parse(time.RFC3339, expires)
	if err != nil {
		return false
	}
	if !deadline.After(c.now()) {
		return false
	}
	expected := c.signMessage(orderID, expires)
	return hmac.Equal([]byte(expected), []byte(token))
}

func (c *Codec) signMessage(orderID int64, expires string) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%d:%s", orderID, expires)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
