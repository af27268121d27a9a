package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de operador emitido tras el login.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
