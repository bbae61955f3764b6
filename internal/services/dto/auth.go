package dto

import "jobportal_backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=applicant employer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both login and register: the bearer token plus
// the user it authenticates.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
