package capability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSign_Deterministic(t *testing.T) {
	codec := NewCodec("secret")
	expires := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	first := codec.Sign(500, expires)
	second := codec.Sign(500, expires)

	require.NotEmpty(t, first)
	require.Equal(t, first, second)
	require.NotContains(t, first, "=")
	require.NotContains(t, first, "+")
	require.NotContains(t, first, "/")
}

func TestSign_DistinctInputsDistinctTokens(t *testing.T) {
	codec := NewCodec("secret")
	expires := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	require.NotEqual(t, codec.Sign(500, expires), codec.Sign(501, expires))
	require.NotEqual(t, codec.Sign(500, expires), codec.Sign(500, expires.Add(time.Second)))
}

func TestVerify_RoundTrip(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("secret", WithClock(fixedClock(now)))
	expires := now.Add(48 * time.Hour)
	token := codec.Sign(500, expires)

	require.True(t, codec.Verify(500, FormatExpiry(expires), token))
}

func TestVerify_FailsAtAndAfterExpiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)
	signer := NewCodec("secret")
	token := signer.Sign(500, expires)

	atExpiry := NewCodec("secret", WithClock(fixedClock(expires)))
	require.False(t, atExpiry.Verify(500, FormatExpiry(expires), token))

	afterExpiry := NewCodec("secret", WithClock(fixedClock(expires.Add(time.Minute))))
	require.False(t, afterExpiry.Verify(500, FormatExpiry(expires), token))
}

func TestVerify_RejectsAnySingleCharacterFlip(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("secret", WithClock(fixedClock(now)))
	expires := now.Add(time.Hour)
	expiresISO := FormatExpiry(expires)
	token := codec.Sign(500, expires)

	for i := range token {
		flipped := []byte(token)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		require.False(t, codec.Verify(500, expiresISO, string(flipped)), "flip at index %d accepted", i)
	}
}

func TestVerify_FailsClosedOnMissingInputs(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("secret", WithClock(fixedClock(now)))
	expires := now.Add(time.Hour)
	token := codec.Sign(500, expires)
	expiresISO := FormatExpiry(expires)

	require.False(t, codec.Verify(0, expiresISO, token))
	require.False(t, codec.Verify(500, "", token))
	require.False(t, codec.Verify(500, expiresISO, ""))
	require.False(t, codec.Verify(500, "not-a-timestamp", token))

	unconfigured := NewCodec("", WithClock(fixedClock(now)))
	require.False(t, unconfigured.Verify(500, expiresISO, unconfigured.Sign(500, expires)))
}

func TestVerify_TokenBoundToOrder(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("secret", WithClock(fixedClock(now)))
	expires := now.Add(time.Hour)
	token := codec.Sign(500, expires)

	require.False(t, codec.Verify(501, FormatExpiry(expires), token))
}

func TestFormatExpiry_WholeSecondsUTC(t *testing.T) {
	stamp := time.Date(2026, 9, 1, 12, 30, 45, 987654321, time.UTC)
	require.Equal(t, "2026-09-01T12:30:45Z", FormatExpiry(stamp))
}
