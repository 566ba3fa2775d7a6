package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterBusinessRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// LoginResponse tolerates the known envelope shapes of the auth backend:
// token and user either flat at the top level or nested under "data".
type LoginResponse struct {
	Token       string         `json:"token"`
	AccessToken string         `json:"accessToken"`
	User        *UserResponse  `json:"user"`
	Data        *LoginDataBody `json:"data"`
	Message     string         `json:"message"`
}

type LoginDataBody struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
