package tokens

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T) (string, *ecdsa.PublicKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	privPEM := string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
	return privPEM, &key.PublicKey
}

func TestCreateTokenWithKey(t *testing.T) {
	privPEM, pubKey := testKeyPair(t)

	profile := map[string]string{"id": "abc", "name": "Alice"}
	claim := map[string]interface{}{"uid": "abc", "email": "alice@example.com"}

	signed, err := CreateTokenWithKey("local", profile, claim, time.Hour, privPEM)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed, err := jwt.ParseWithClaims(signed, &MarknestClaims{}, func(token *jwt.Token) (interface{}, error) {
		return pubKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "marknest-auth-key-1", parsed.Header["kid"])

	claims := parsed.Claims.(*MarknestClaims)
	require.Equal(t, "marknest@local", claims.Issuer)
	require.Equal(t, "Alice", claims.Name)
	require.Equal(t, "alice@example.com", claims.Claim["email"])
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCreateTokenWithKey_BadKey(t *testing.T) {
	_, err := CreateTokenWithKey("local", nil, nil, time.Hour, "not a pem key")
	require.Error(t, err)
}

func TestCreateTokenWithKey_TTLPolicy(t *testing.T) {
	privPEM, pubKey := testKeyPair(t)

	short, err := CreateTokenWithKey("local", nil, nil, 24*time.Hour, privPEM)
	require.NoError(t, err)
	long, err := CreateTokenWithKey("local", nil, nil, 7*24*time.Hour, privPEM)
	require.NoError(t, err)

	expOf := func(raw string) time.Time {
		parsed, err := jwt.ParseWithClaims(raw, &MarknestClaims{}, func(token *jwt.Token) (interface{}, error) {
			return pubKey, nil
		})
		require.NoError(t, err)
		return parsed.Claims.(*MarknestClaims).ExpiresAt.Time
	}

	require.True(t, expOf(long).After(expOf(short).Add(5*24*time.Hour)))
}
