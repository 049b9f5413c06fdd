package dto

import "time"

// RegisterRequest entrada para registro. Role vacío usa el rol por defecto de
// la configuración; nunca se confía en el rol del cliente sin validarlo.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=60"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role" validate:"omitempty,oneof=admin staff supplier"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida de login; SessionID lo convierte el handler en cookie
// HTTP-only, no viaja en el body más allá de esta respuesta.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	SessionID string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
}
