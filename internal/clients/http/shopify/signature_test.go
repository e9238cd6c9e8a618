package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookVerifier_AcceptsValidSignature(t *testing.T) {
	body := []byte(`{"id":500,"tags":""}`)
	verifier := NewWebhookVerifier("hush")

	require.True(t, verifier.Verify(body, signBody("hush", body)))
}

func TestWebhookVerifier_RejectsReserializedBody(t *testing.T) {
	original := []byte(`{"id":500,"tags":""}`)
	reserialized := []byte(`{"id": 500, "tags": ""}`)
	verifier := NewWebhookVerifier("hush")
	header := signBody("hush", original)

	require.True(t, verifier.Verify(original, header))
	require.False(t, verifier.Verify(reserialized, header))
}

func TestWebhookVerifier_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{"id":500}`)
	verifier := NewWebhookVerifier("hush")

	require.False(t, verifier.Verify(body, signBody("other", body)))
}

func TestWebhookVerifier_FailsClosed(t *testing.T) {
	body := []byte(`{"id":500}`)

	require.False(t, NewWebhookVerifier("hush").Verify(body, ""))
	require.False(t, NewWebhookVerifier("").Verify(body, signBody("", body)))
}
