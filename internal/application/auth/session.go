package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// Claves del almacenamiento local del cliente.
const (
	KeyCurrentUser   = "currentUser"
	KeySessionExpiry = "sessionExpiry"
)

// Manager sesión de un cliente: LoggedOut o LoggedIn(usuario, expiración).
// El estado vive en memoria y se refleja en el almacenamiento local del cliente
// (currentUser en JSON sin contraseña, sessionExpiry en milisegundos epoch).
type Manager struct {
	storage repository.KeyValueStore
	users   UserDirectory
	prefs   repository.PreferencesRepository
	log     zerolog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	user   *entity.User
	expiry time.Time
}

// NewManager construye un Manager en estado LoggedOut. now puede ser nil (time.Now).
func NewManager(
	storage repository.KeyValueStore,
	users UserDirectory,
	prefs repository.PreferencesRepository,
	log zerolog.Logger,
	now func() time.Time,
) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{storage: storage, users: users, prefs: prefs, log: log, now: now}
}

// Login busca un usuario activo con ese nombre cuya contraseña coincida. Sin coincidencia
// devuelve domain.ErrUnauthorized y el estado no cambia.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	candidates, err := m.users.ActiveByUsername(username)
	if err != nil {
		return err
	}
	var match *entity.User
	for i := range candidates {
		if VerifyPassword(candidates[i].Password, password) {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		m.log.Info().Str("username", username).Msg("login rechazado")
		return domain.ErrUnauthorized
	}

	prefs, err := m.prefs.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("preferencias no disponibles, duración de sesión por defecto")
		prefs = entity.DefaultPreferences()
	}
	if prefs.SessionDuration <= 0 {
		prefs.SessionDuration = entity.DefaultPreferences().SessionDuration
	}
	expiry := m.now().Add(time.Duration(prefs.SessionDuration) * time.Hour)

	snapshot := match.WithoutPassword()
	if err := m.persist(ctx, snapshot, expiry); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = &snapshot
	m.expiry = expiry
	m.mu.Unlock()

	m.log.Info().Str("user_id", snapshot.ID).Str("role", snapshot.Role).Time("expires", expiry).Msg("sesión iniciada")
	return nil
}

// RestoreSession lee el almacenamiento local. Si la expiración es posterior a ahora queda LoggedIn
// sin volver a verificar credenciales; si no (o si los valores no se pueden leer) queda LoggedOut
// y se borran ambas claves.
func (m *Manager) RestoreSession(ctx context.Context) (bool, error) {
	rawUser, hasUser, err := m.storage.Get(ctx, KeyCurrentUser)
	if err != nil {
		return false, fmt.Errorf("%w: leer sesión: %w", domain.ErrStorage, err)
	}
	rawExpiry, hasExpiry, err := m.storage.Get(ctx, KeySessionExpiry)
	if err != nil {
		return false, fmt.Errorf("%w: leer sesión: %w", domain.ErrStorage, err)
	}
	if !hasUser || !hasExpiry {
		return false, m.clear(ctx)
	}

	ms, err := strconv.ParseInt(string(rawExpiry), 10, 64)
	if err != nil {
		m.log.Warn().Err(err).Msg("expiración de sesión ilegible")
		return false, m.clear(ctx)
	}
	expiry := time.UnixMilli(ms)
	if !expiry.After(m.now()) {
		return false, m.clear(ctx)
	}

	var user entity.User
	if err := json.Unmarshal(rawUser, &user); err != nil || user.ID == "" {
		m.log.Warn().Err(err).Msg("usuario de sesión ilegible")
		return false, m.clear(ctx)
	}

	m.mu.Lock()
	m.user = &user
	m.expiry = expiry
	m.mu.Unlock()
	return true, nil
}

// Logout pasa a LoggedOut y borra ambas claves.
func (m *Manager) Logout(ctx context.Context) error {
	return m.clear(ctx)
}

// RefreshSnapshot reescribe currentUser cuando cambia el registro del propio usuario.
// Si user no es el usuario de la sesión no hace nada.
func (m *Manager) RefreshSnapshot(ctx context.Context, user entity.User) error {
	m.mu.RLock()
	current, expiry := m.user, m.expiry
	m.mu.RUnlock()
	if current == nil || current.ID != user.ID {
		return nil
	}
	snapshot := user.WithoutPassword()
	if err := m.persist(ctx, snapshot, expiry); err != nil {
		return err
	}
	m.mu.Lock()
	m.user = &snapshot
	m.mu.Unlock()
	return nil
}

// CurrentUser usuario de la sesión (sin contraseña).
func (m *Manager) CurrentUser() (entity.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return entity.User{}, false
	}
	return *m.user, true
}

// Expiry instante de expiración; cero en LoggedOut.
func (m *Manager) Expiry() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiry
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentUser()
	return ok
}

// Role definición del rol del usuario actual.
func (m *Manager) Role() (entity.Role, bool) {
	u, ok := m.CurrentUser()
	if !ok {
		return entity.Role{}, false
	}
	return entity.RoleByName(u.Role)
}

// HasPermission siempre resuelve contra la tabla estática de roles.
func (m *Manager) HasPermission(p entity.Permission) bool {
	u, ok := m.CurrentUser()
	return ok && entity.RoleHasPermission(u.Role, p)
}

func (m *Manager) IsAdmin() bool    { return m.hasRole(entity.RoleAdmin) }
func (m *Manager) IsManager() bool  { return m.hasRole(entity.RoleManager) }
func (m *Manager) IsEmployee() bool { return m.hasRole(entity.RoleEmployee) }

func (m *Manager) hasRole(role string) bool {
	u, ok := m.CurrentUser()
	return ok && u.Role == role
}

func (m *Manager) persist(ctx context.Context, user entity.User, expiry time.Time) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := m.storage.Set(ctx, KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("%w: guardar sesión: %w", domain.ErrStorage, err)
	}
	ms := strconv.FormatInt(expiry.UnixMilli(), 10)
	if err := m.storage.Set(ctx, KeySessionExpiry, []byte(ms)); err != nil {
		return fmt.Errorf("%w: guardar sesión: %w", domain.ErrStorage, err)
	}
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.expiry = time.Time{}
	m.mu.Unlock()

	errUser := m.storage.Delete(ctx, KeyCurrentUser)
	errExpiry := m.storage.Delete(ctx, KeySessionExpiry)
	if errUser != nil {
		return fmt.Errorf("%w: borrar sesión: %w", domain.ErrStorage, errUser)
	}
	if errExpiry != nil {
		return fmt.Errorf("%w: borrar sesión: %w", domain.ErrStorage, errExpiry)
	}
	return nil
}
