package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(secret, 0)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	tm, err := NewTokenManager("", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, tm)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := newTestManager(t, "test-secret")

	for _, identity := range []string{"u@x.com", "a@x.com", "someone+tag@example.org"} {
		token, exp, err := tm.Issue(identity)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, identity, claims.Email)
		assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestTokenManager_IssueRejectsEmptyIdentity(t *testing.T) {
	tm := newTestManager(t, "test-secret")

	_, _, err := tm.Issue("")
	assert.ErrorIs(t, err, ErrEmptyIdentity)
	_, _, err = tm.Issue("   ")
	assert.ErrorIs(t, err, ErrEmptyIdentity)
}

func TestTokenManager_Expiry(t *testing.T) {
	issuer := newTestManager(t, "test-secret")
	verifier := newTestManager(t, "test-secret")

	issuer.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	stale, _, err := issuer.Issue("u@x.com")
	require.NoError(t, err)
	_, err = verifier.Parse(stale)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	issuer.now = func() time.Time { return time.Now().Add(-23 * time.Hour) }
	fresh, _, err := issuer.Issue("u@x.com")
	require.NoError(t, err)
	_, err = verifier.Parse(fresh)
	assert.NoError(t, err)
}

func TestTokenManager_RejectsTamperedPayload(t *testing.T) {
	tm := newTestManager(t, "test-secret")
	token, _, err := tm.Issue("u@x.com")
	require.NoError(t, err)

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)
	payload := segments[1]

	for i := range payload {
		replacement := byte('A')
		if payload[i] == 'A' {
			replacement = 'B'
		}
		tampered := payload[:i] + string(replacement) + payload[i+1:]
		forged := strings.Join([]string{segments[0], tampered, segments[2]}, ".")

		_, err := tm.Parse(forged)
		assert.Error(t, err, "byte %d flipped", i)
	}
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	other := newTestManager(t, "other-secret")
	token, _, err := other.Issue("u@x.com")
	require.NoError(t, err)

	_, err = newTestManager(t, "test-secret").Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenManager_RejectsUnexpectedMethods(t *testing.T) {
	tm := newTestManager(t, "test-secret")

	claims := &Claims{
		Email: "u@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Parse(unsigned)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tm.Parse(hs512)
	assert.Error(t, err)
}

func TestTokenManager_RequiresExpiryAndIdentity(t *testing.T) {
	tm := newTestManager(t, "test-secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "u@x.com"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tm.Parse(noExp)
	assert.Error(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tm.Parse(noEmail)
	assert.Error(t, err)
}
