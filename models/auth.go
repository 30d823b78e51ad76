package models

// RegisterRequest is the registration payload for any role except
// system_admin (system admins are provisioned out-of-band).
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`

	// School fields, required when Role is school_admin.
	SchoolName    string   `json:"schoolName"`
	SchoolAddress string   `json:"schoolAddress"`
	FeeRange      FeeRange `json:"feeRange"`
}

// LoginRequest is the credential payload for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
