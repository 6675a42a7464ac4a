package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

var secretKey = os.Getenv("SECRET_KEY")

// JwtIssuer identifies tokens minted by this service.
const JwtIssuer = "SecureShare"

// TokenTTL is how long an access token stays valid. Logout is a client-side
// credential discard; there is no revocation list.
const TokenTTL = 24 * time.Hour

// Claims is the identity embedded in an access token: subject carries the
// account id, Email the account email used by admin authorization.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken wraps the identity into a signed HS256 token valid for TokenTTL.
func GenerateToken(id uuid.UUID, email string) (string, error) {
	return GenerateTokenWithDuration(id, email, TokenTTL, JwtIssuer)
}

// GenerateTokenWithDuration is the configurable variant used by tests.
func GenerateTokenWithDuration(id uuid.UUID, email string, duration time.Duration, issuer string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signedToken, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}
	return signedToken, nil
}

// ValidatedToken parses a bearer token, verifying signature and expiry.
func ValidatedToken(encodedToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodedToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(secretKey), nil
	})
}
