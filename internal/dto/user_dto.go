package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum" example:"jdoe"`
	Email    string `json:"email" binding:"required,email,max=100" example:"jdoe@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"s3cret!"`
	FullName string `json:"fullName" binding:"max=100" example:"John Doe"`
}

// UpdateProfileRequest represents the request to update the caller's profile.
// All fields are optional.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,max=100" example:"John Doe"`
	Bio      *string `json:"bio" binding:"omitempty,max=1000" example:"Writes about Go"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=255" example:"https://cdn.example.com/a.png"`
}

// UpdateRoleRequest represents an admin role change
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin" example:"admin"`
}

// UserResponse represents a user as seen by the user themselves or an admin
type UserResponse struct {
	UserID    uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Avatar    *string   `json:"avatar,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileResponse represents a public profile
type ProfileResponse struct {
	UserID    uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Avatar    *string   `json:"avatar,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	PostCount int64     `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorSummary is the author block embedded in post responses
type AuthorSummary struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   *string   `json:"avatar,omitempty"`
}

// PaginatedUsersResponse represents an admin user listing
type PaginatedUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
