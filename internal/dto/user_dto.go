package dto

import "moviehub/internal/models"

// CreateUserDTO used by admins on POST /api/v1/users
type CreateUserDTO struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"omitempty,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name" binding:"omitempty,max=40"`
	LastName  string `json:"last_name" binding:"omitempty,max=40"`
}

// UpdateUserDTO for partial user updates. Role is honored on the admin
// endpoint only; the self endpoint ignores it.
type UpdateUserDTO struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Username  *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio,omitempty"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=40"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=40"`
}

type UserResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Bio:       user.Bio,
		Email:     user.Email,
		Role:      user.Role,
	}
}
