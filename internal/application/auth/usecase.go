// Package auth implementa registro, login con lockout progresivo y el ciclo de
// vida de las sesiones opacas (cookie session_id).
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/config"
	"github.com/tu-usuario/pos-inventario/pkg/password"
)

// Hash bcrypt de relleno: cuando el usuario no existe se compara igual contra
// este hash para no filtrar por timing cuál de usuario/password falló.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUseCase casos de uso de autenticación: registro, login, logout y
// resolución del usuario actual a partir de la sesión.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      password.Hasher
	cfg         config.AuthConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher password.Hasher,
	cfg config.AuthConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, hasher: hasher, cfg: cfg}
}

// NormalizeUsername canonicaliza el username: NFKC + minúsculas + sin espacios
// en los extremos. Se aplica tanto al registrar como al buscar.
func NormalizeUsername(username string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(username)))
}

// Register crea un usuario: hashea el password y persiste. Devuelve
// ErrUsernameTaken si el username ya existe. El rol vacío usa el rol por
// defecto de la configuración; un rol explícito debe ser válido (el handler
// público fuerza rol vacío, solo la gestión admin envía roles).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = uc.cfg.DefaultRole
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password aplicando el lockout progresivo y, en caso
// de éxito, crea una sesión nueva en el store.
//
// Orden de chequeo:
//  1. usuario inexistente -> ErrInvalidCredentials (con compare dummy, sin
//     revelar cuál de los dos datos falló)
//  2. cooldown vigente -> RateLimitedError, aunque el password sea correcto
//  3. password incorrecto -> incrementa intentos; al alcanzar el umbral activa
//     un cooldown que escala (base * 2^exceso, con tope)
//  4. password correcto -> resetea contadores y emite la sesión
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := NormalizeUsername(in.Username)
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = uc.hasher.Compare(dummyHash, in.Password)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if user.InCooldown(now) {
		return nil, &domain.RateLimitedError{
			RetryAfterSeconds: remainingSeconds(*user.CooldownUntil, now),
		}
	}

	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		return nil, uc.registerFailure(user, now)
	}

	// Éxito: siempre vuelve al estado Normal con contadores en cero.
	if user.LoginAttempts != 0 || user.CooldownUntil != nil {
		if err := uc.userRepo.UpdateLoginState(user.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:      *toUserResponse(user),
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// registerFailure incrementa el contador de intentos y activa el cooldown
// cuando se alcanza el umbral. La escalada duplica el cooldown base por cada
// fallo por encima del umbral, con tope CooldownMax.
func (uc *AuthUseCase) registerFailure(user *entity.User, now time.Time) error {
	attempts := user.LoginAttempts + 1

	if attempts < uc.cfg.MaxAttempts {
		if err := uc.userRepo.UpdateLoginState(user.ID, attempts, nil); err != nil {
			return err
		}
		return domain.ErrInvalidCredentials
	}

	cooldown := uc.cfg.CooldownBase
	for i := uc.cfg.MaxAttempts; i < attempts && cooldown < uc.cfg.CooldownMax; i++ {
		cooldown *= 2
	}
	if cooldown > uc.cfg.CooldownMax {
		cooldown = uc.cfg.CooldownMax
	}

	until := now.Add(cooldown)
	if err := uc.userRepo.UpdateLoginState(user.ID, attempts, &until); err != nil {
		return err
	}
	return &domain.RateLimitedError{RetryAfterSeconds: remainingSeconds(until, now)}
}

// Logout elimina la sesión. Idempotente: una sesión ausente también es éxito.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// CurrentUser resuelve el usuario dueño de la sesión.
// ErrUnauthenticated si la sesión no existe (o expiró en el store);
// ErrUserNotFound si el usuario fue eliminado después de emitirla.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, sessionID string) (*dto.UserResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func remainingSeconds(until, now time.Time) int64 {
	secs := int64(until.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
