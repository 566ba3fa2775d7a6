package usecase

import (
	"fmt"
	"strings"

	"github.com/pakolabs/business-console/internal/app/usecase/crypto"
)

const (
	bearerHeader = "Bearer"

	AuthHeader = "Authorization"
)

func GetClaimsFromAuthHeader(header, secret string) (crypto.Claims, error) {
	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 {
		return crypto.Claims{}, fmt.Errorf("auth header doesn't contain two parts")
	}

	if headerParts[0] != bearerHeader {
		return crypto.Claims{}, fmt.Errorf("first auth header part is invalid")
	}

	claims, err := crypto.ParseToken(headerParts[1], secret)
	if err != nil {
		return crypto.Claims{}, fmt.Errorf("error while parsing token from auth header: %w", err)
	}

	return claims, nil
}

func SetTokenToAuthHeaderFormat(token string) string {
	return fmt.Sprintf("%s %s", bearerHeader, token)
}
