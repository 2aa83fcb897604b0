package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MarknestClaims is the token envelope carrying the user Claim map.
type MarknestClaims struct {
	Name  string                 `json:"name"`
	Claim map[string]interface{} `json:"claim"`
	jwt.RegisteredClaims
}

// CreateTokenWithKey creates an ES256 signed JWT with MarknestClaims using the
// provided private key. The lifetime is a caller policy: signup and login
// issue tokens with different TTLs.
func CreateTokenWithKey(providerName string, profile map[string]string, claim map[string]interface{}, ttl time.Duration, privateKeyPEM string) (string, error) {
	privateKey, keyErr := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if keyErr != nil {
		return "", keyErr
	}
	method := jwt.GetSigningMethod(jwt.SigningMethodES256.Name)
	claims := MarknestClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        profile["id"],
			Issuer:    "marknest@" + providerName,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   profile["login"],
			Audience:  []string{profile["audience"]},
		},
		Name:  profile["name"],
		Claim: claim,
	}

	token := jwt.NewWithClaims(method, claims)
	token.Header["kid"] = "marknest-auth-key-1"

	return token.SignedString(privateKey)
}
