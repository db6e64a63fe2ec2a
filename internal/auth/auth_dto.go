package auth

import "time"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}
