package users

import "github.com/sharath018/hotel-association-backend/internal/auth"

// CreateUserRequest is what staff submit to open an account for someone.
// A blank password makes the service generate a temporary one.
type CreateUserRequest struct {
	DisplayName string    `json:"display_name" binding:"required" example:"Jun Reyes"`
	Email       string    `json:"email" binding:"required,email" example:"jun@association.org"`
	Role        auth.Role `json:"role" binding:"required" example:"admin"`
	Password    string    `json:"password,omitempty"`
}

// CreatedUser carries the temporary password back to the creating admin
// exactly once.
type CreatedUser struct {
	Profile           *auth.Profile `json:"profile"`
	TemporaryPassword string        `json:"temporary_password"`
}

type UpdateRoleRequest struct {
	Role auth.Role `json:"role" binding:"required" example:"admin"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}
