package dto

// Data Transfer Objects for authentication requests and responses

// EmailSignupRequest: payload for requesting a confirmation code
type EmailSignupRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailSignupResponse: echoes the email with its confirmation code
type EmailSignupResponse struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// ConfirmTokenRequest: payload for exchanging a confirmation code for a token
type ConfirmTokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: access token issued after email confirmation
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginRequest: payload for password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// RefreshTokenRequest: payload for refreshing access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse: response payload after refreshing access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}
