package auth

import (
	"github.com/pakolabs/business-console/internal/app/converter"
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"go.uber.org/zap"
)

// The auth backend has shipped more than one envelope for the same logical
// fields. Extraction is an ordered rule list tried in sequence so the
// accepted shapes stay auditable in one place.

type tokenRule struct {
	name    string
	extract func(response model.LoginResponse) string
}

var tokenRules = []tokenRule{
	{
		name:    "token",
		extract: func(response model.LoginResponse) string { return response.Token },
	},
	{
		name:    "accessToken",
		extract: func(response model.LoginResponse) string { return response.AccessToken },
	},
	{
		name: "data.token",
		extract: func(response model.LoginResponse) string {
			if response.Data == nil {
				return ""
			}
			return response.Data.Token
		},
	},
}

type userRule struct {
	name    string
	extract func(response model.LoginResponse) *model.UserResponse
}

var userRules = []userRule{
	{
		name:    "user",
		extract: func(response model.LoginResponse) *model.UserResponse { return response.User },
	},
	{
		name: "data.user",
		extract: func(response model.LoginResponse) *model.UserResponse {
			if response.Data == nil {
				return nil
			}
			return response.Data.User
		},
	},
}

func ExtractToken(response model.LoginResponse) string {
	for _, rule := range tokenRules {
		token := rule.extract(response)
		if len(token) > 0 {
			zap.L().Debug("token extracted from login response", zap.String("rule", rule.name))
			return token
		}
	}

	return ""
}

// ExtractUser falls back to a minimal projection built from the login email
// when no rule matches; the token alone is enough for an authenticated session.
func ExtractUser(response model.LoginResponse, fallbackEmail string) entity.User {
	for _, rule := range userRules {
		user := rule.extract(response)
		if user != nil {
			zap.L().Debug("user extracted from login response", zap.String("rule", rule.name))
			return converter.ConvertUserResponseToUser(*user)
		}
	}

	return entity.User{Email: fallbackEmail}
}
