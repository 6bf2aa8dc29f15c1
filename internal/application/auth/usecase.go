package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
	"github.com/jhoicas/salmichou-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// StorageFactory devuelve el almacenamiento local de un cliente (sesión) a partir de su id.
type StorageFactory func(sessionID string) repository.KeyValueStore

// AuthUseCase expone el Manager por HTTP: cada cliente tiene un id de sesión que viaja en el JWT
// y un almacenamiento local propio donde el Manager guarda currentUser y sessionExpiry.
type AuthUseCase struct {
	storage StorageFactory
	users   UserDirectory
	prefs   repository.PreferencesRepository
	jwtCfg  JWTConfig
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. now puede ser nil (time.Now).
func NewAuthUseCase(
	storage StorageFactory,
	users UserDirectory,
	prefs repository.PreferencesRepository,
	jwtCfg JWTConfig,
	log zerolog.Logger,
	now func() time.Time,
) *AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCase{storage: storage, users: users, prefs: prefs, jwtCfg: jwtCfg, log: log, now: now}
}

// ManagerFor construye el Manager del cliente (LoggedOut hasta Login o RestoreSession).
func (uc *AuthUseCase) ManagerFor(sessionID string) *Manager {
	return NewManager(uc.storage(sessionID), uc.users, uc.prefs, uc.log.With().Str("session", sessionID).Logger(), uc.now)
}

// Login abre una sesión nueva y devuelve su token. Credenciales inválidas: domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	sessionID := uuid.NewString()
	m := uc.ManagerFor(sessionID)
	if err := m.Login(ctx, in.Username, in.Password); err != nil {
		return nil, err
	}
	user, _ := m.CurrentUser()
	expiry := m.Expiry()

	token, err := jwt.Generate(uc.jwtCfg.Secret, sessionID, user.ID, user.Role, uc.jwtCfg.Issuer, expiry)
	if err != nil {
		_ = m.Logout(ctx)
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiry,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Resume valida el token y restaura la sesión del cliente. Token inválido o sesión expirada:
// domain.ErrUnauthorized.
func (uc *AuthUseCase) Resume(ctx context.Context, token string) (*Manager, string, error) {
	sessionID, _, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	m := uc.ManagerFor(sessionID)
	ok, err := m.RestoreSession(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.ErrUnauthorized
	}
	return m, sessionID, nil
}

// Session describe la sesión activa para GET /api/auth/me.
func (uc *AuthUseCase) Session(m *Manager) (*dto.SessionResponse, error) {
	user, ok := m.CurrentUser()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	role, _ := m.Role()
	resp := dto.SessionResponse{
		User:      dto.ToUserResponse(user),
		Role:      dto.ToRoleResponse(role),
		ExpiresAt: m.Expiry(),
	}
	resp.Permissions = resp.Role.Permissions
	return &resp, nil
}
