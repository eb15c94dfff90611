package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("super-secret"), TTL: time.Hour}

	tok, exp, err := m.GenerateToken("Alice", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	require.Equal(t, "Alice", claims.Name)
	require.Equal(t, "a@x.com", claims.Email)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	require.Equal(t, time.Hour, claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time))
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("secret"), TTL: -1 * time.Second}

	tok, _, err := m.GenerateToken("Alice", "a@x.com")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := &JWTManager{Secret: []byte("right-secret"), TTL: time.Hour}
	verifier := &JWTManager{Secret: []byte("wrong-secret"), TTL: time.Hour}

	tok, _, err := issuer.GenerateToken("Alice", "a@x.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(tok)
	require.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	m := &JWTManager{Secret: []byte("k"), TTL: time.Hour}
	_, err := m.ParseToken("not.a.jwt")
	require.Error(t, err)
}
