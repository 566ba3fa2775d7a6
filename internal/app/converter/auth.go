package converter

import (
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
)

func ConvertUserResponseToUser(response model.UserResponse) entity.User {
	return entity.User{
		ID:     entity.UserID(response.ID),
		Email:  response.Email,
		Name:   response.Name,
		Role:   response.Role,
		Status: response.Status,
	}
}
