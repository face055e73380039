package operator

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "waybill/pkg/domain-errors"
)

const roleOperator = "operator"

// Claims are the JWT claims for operator access tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MintToken issues an HS256 operator token, used by optool to provision
// credentials for the privileged operator.
func MintToken(signingKey []byte, subject string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: roleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "waybill",
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(signingKey)
}

// VerifyJWT validates an operator token and its role claim.
func VerifyJWT(signingKey []byte, tokenString string) error {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid operator token")
	}
	if claims.Role != roleOperator {
		return dErrors.New(dErrors.CodeUnauthorized, "token lacks operator role")
	}
	return nil
}
