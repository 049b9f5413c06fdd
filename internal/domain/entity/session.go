package entity

import "time"

// Session es el token opaco emitido en login y transportado en la cookie
// session_id. La expiración la aplica el store (TTL en Redis); ExpiresAt
// se conserva para trazabilidad.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired indica si la sesión pasó su tiempo de expiración.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
