package validator

import "github.com/pakolabs/business-console/internal/app/model"

func ValidateLoginRequest(request model.LoginRequest) bool {
	return len(request.Email) > 0 && len(request.Password) > 0
}

func ValidateRegisterRequest(request model.RegisterBusinessRequest) bool {
	return len(request.Name) > 0 && len(request.Email) > 0 && len(request.Password) > 0
}
