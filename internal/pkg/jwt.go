package pkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken signs a token carrying the session document id and
// the account id. The auth middleware resolves the session document on
// every request, so deleting the document invalidates outstanding tokens
// regardless of their expiry.
func GenerateSessionToken(secret, sessionID, accountID string, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": accountID,
		"sid": sessionID,
		"exp": expiresAt.Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies the token signature and expiry and returns the
// session document id claim.
func ParseSessionToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	if exp, ok := claims["exp"].(float64); ok && float64(time.Now().Unix()) > exp {
		return "", errors.New("token expired")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("token carries no session id")
	}

	return sid, nil
}
