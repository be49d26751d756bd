package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/kosthub/backend/internal/application/identity"
)

// =====================
// Auth Request DTOs
// =====================

// RegisterRequest represents the request body for account registration.
// RoleClaim is advisory: "admin" registers a property owner, anything
// else lands on tenant. Staff roles never come from registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FullName  string `json:"full_name" binding:"omitempty,max=255"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	RoleClaim string `json:"role_claim" binding:"omitempty,max=32"`
}

// LoginRequest represents the request body for account login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthAccountResponse represents account data in auth responses
type AuthAccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name,omitempty"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	IsStaff     bool      `json:"is_staff"`
}

// RegisterResponse represents the response body for successful registration
type RegisterResponse struct {
	Account AuthAccountResponse `json:"account"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token   TokenResponse       `json:"token"`
	Account AuthAccountResponse `json:"account"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// CurrentAccountResponse represents the response body for current account
// info. Home and Shell tell the client where this session belongs without
// a second navigation round trip.
type CurrentAccountResponse struct {
	Account AuthAccountResponse `json:"account"`
	Home    string              `json:"home"`
	Shell   string              `json:"shell"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// toAuthAccountResponse maps application account info to the wire shape
func toAuthAccountResponse(info identity.AccountInfo) AuthAccountResponse {
	return AuthAccountResponse{
		ID:          info.ID,
		Email:       info.Email,
		FullName:    info.FullName,
		DisplayName: info.DisplayName,
		Phone:       info.Phone,
		Role:        info.Role.String(),
		IsStaff:     info.IsStaff,
	}
}

// toTokenResponse maps a token pair result to the wire shape
func toTokenResponse(accessToken, refreshToken string, accessExpires, refreshExpires time.Time, tokenType string) TokenResponse {
	return TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpires,
		RefreshTokenExpiresAt: refreshExpires,
		TokenType:             tokenType,
	}
}
