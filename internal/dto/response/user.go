package response

import (
	"review-hub/internal/data/entity"
)

type UserResponse struct {
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName *string         `json:"first_name,omitempty"`
	LastName  *string         `json:"last_name,omitempty"`
	Bio       *string         `json:"bio,omitempty"`
	Role      entity.UserRole `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
