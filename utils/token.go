package authUtils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// tokenTTL is how long a login session stays valid.
const tokenTTL = 72 * time.Hour

// GenerateAndSetToken mints an HS256 JWT carrying the user's id.
func GenerateAndSetToken(userID string) (string, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretStr))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
