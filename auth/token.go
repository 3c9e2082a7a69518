package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueSessionToken signs the service's own HS256 token for the presentation
// layer once the gateway has verified the user. The gateway token stays in
// the session store; this one only carries identity for /user routes.
func IssueSessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    "customer",
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
