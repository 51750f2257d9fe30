package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := New(testSecret, DefaultTTL)

	raw, err := svc.Issue("user-1", "user", "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestVerifyMissing(t *testing.T) {
	svc := New(testSecret, DefaultTTL)
	_, err := svc.Verify("")
	require.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerifyMalformed(t *testing.T) {
	svc := New(testSecret, DefaultTTL)
	for _, raw := range []string{"garbage", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	svc := New(testSecret, DefaultTTL)
	raw, err := svc.Issue("user-1", "user", "alice", "")
	require.NoError(t, err)

	// Re-encode the payload with the role swapped; the signature no
	// longer matches the mutated body.
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	mutated := strings.Replace(string(payload), `"role":"user"`, `"role":"admin"`, 1)
	require.NotEqual(t, string(payload), mutated)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(mutated))

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyWrongKey(t *testing.T) {
	svc := New(testSecret, DefaultTTL)
	other := New([]byte("some-other-secret"), DefaultTTL)

	raw, err := other.Issue("user-1", "user", "", "")
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyExpired(t *testing.T) {
	// A service constructed with a negative TTL issues already-expired
	// tokens, which is the cheapest way to cross the expiry boundary
	// without a clock.
	svc := &Service{secret: testSecret, ttl: -time.Minute}
	raw, err := svc.Issue("user-1", "user", "", "")
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestNoRevocation(t *testing.T) {
	// Stateless by design: nothing the server does between issue and
	// verify (password change, role change) invalidates the token.
	svc := New(testSecret, DefaultTTL)
	raw, err := svc.Issue("user-1", "user", "alice", "")
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user", claims.Role)

	claims, err = svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}
