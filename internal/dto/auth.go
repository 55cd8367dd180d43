package dto

import "time"

// RegisterRequest is the payload of POST /auth/register
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Name     *string `json:"name" binding:"omitempty,max=150"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	RoleID   *uint   `json:"role_id" binding:"omitempty,min=1"`
}

// LoginRequest is the payload of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserProfile is the public view of a user; it never carries the password hash
type UserProfile struct {
	ID              uint      `json:"id"`
	UUID            string    `json:"uuid"`
	RoleID          uint      `json:"role_id"`
	RoleName        *string   `json:"role_name"`
	Name            *string   `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsPhoneVerified bool      `json:"is_phone_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RoleResponse is an entry of GET /users/roles
type RoleResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
