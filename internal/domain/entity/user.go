package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleSupplier = "supplier"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleSupplier:
		return true
	}
	return false
}

// User representa una cuenta del sistema POS.
// LoginAttempts y CooldownUntil forman el subsistema de lockout progresivo:
// un CooldownUntil futuro bloquea el login aunque el password sea correcto.
type User struct {
	ID            string
	Username      string // único, normalizado (NFKC + minúsculas)
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Role          string // admin, staff, supplier
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LoginAttempts int        // >= 0, se resetea en login exitoso
	CooldownUntil *time.Time // nil = sin bloqueo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InCooldown indica si el usuario está bloqueado en el instante now.
func (u *User) InCooldown(now time.Time) bool {
	return u.CooldownUntil != nil && u.CooldownUntil.After(now)
}
