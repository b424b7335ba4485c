package auth

import (
	"github.com/sitca-league/sitca-backend/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@cricket.com"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
