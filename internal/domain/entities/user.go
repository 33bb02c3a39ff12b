package entities

import (
	"time"

	"github.com/google/uuid"
)

// SettingsMap is a free-form per-user settings document. Updates go through
// a copy-on-write merge so the storage layer always sees an explicit write.
type SettingsMap map[string]any

// Merge returns a new map with patch applied over s. Nil receivers are
// treated as empty.
func (s SettingsMap) Merge(patch map[string]any) SettingsMap {
	out := make(SettingsMap, len(s)+len(patch))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// User represents a registered user
type User struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	DisplayName   string      `json:"display_name"`
	PasswordHash  string      `json:"-"`
	EmailVerified bool        `json:"email_verified"`
	Settings      SettingsMap `json:"settings"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=255"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResponse represents the login response payload
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// UpdateProfileInput represents a partial profile update
type UpdateProfileInput struct {
	DisplayName *string        `json:"display_name" binding:"omitempty,min=1,max=255"`
	Settings    map[string]any `json:"settings"`
}

// PasswordResetRequestInput asks for a reset code by email
type PasswordResetRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetInput redeems a reset code and sets a new password
type PasswordResetInput struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// VerifyEmailInput redeems an email verification code
type VerifyEmailInput struct {
	Code string `json:"code" binding:"required,len=6"`
}
