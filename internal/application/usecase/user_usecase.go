package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salmichou-pos/internal/application/auth"
	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// UserUseCase gestión de cuentas. Ningún usuario puede borrarse ni desactivarse a sí mismo.
type UserUseCase struct {
	store  *store.Store
	scheme string
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso. scheme es el esquema de contraseña (plain|bcrypt).
func NewUserUseCase(st *store.Store, scheme string, now func() time.Time) *UserUseCase {
	if now == nil {
		now = time.Now
	}
	return &UserUseCase{store: st, scheme: scheme, now: now}
}

// Create username duplicado (sin distinguir mayúsculas): ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	password, err := auth.HashPassword(uc.scheme, in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := entity.User{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(in.Username),
		Password:  password,
		Role:      in.Role,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.store.Mutate(ctx, func(doc *entity.Document) error {
		if usernameTaken(doc.Users, user.Username, "") {
			return domain.ErrDuplicate
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	var resp *dto.UserResponse
	err := uc.store.View(func(doc *entity.Document) error {
		i := doc.FindUser(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		r := dto.ToUserResponse(doc.Users[i])
		resp = &r
		return nil
	})
	return resp, err
}

// List todos los usuarios; active filtra por estado si no es nil.
func (uc *UserUseCase) List(active *bool) ([]dto.UserResponse, error) {
	out := []dto.UserResponse{}
	err := uc.store.View(func(doc *entity.Document) error {
		for _, u := range doc.Users {
			if active != nil && u.IsActive != *active {
				continue
			}
			out = append(out, dto.ToUserResponse(u))
		}
		return nil
	})
	return out, err
}

// Roles tabla estática de roles.
func (uc *UserUseCase) Roles() []dto.RoleResponse {
	roles := entity.Roles()
	out := make([]dto.RoleResponse, len(roles))
	for i, r := range roles {
		out[i] = dto.ToRoleResponse(r)
	}
	return out
}

// Update aplica los campos presentes. Desactivarse a sí mismo: ErrSelfModification.
// Si el usuario actualizado es el de la sesión se reescribe su snapshot.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.IsActive != nil && !*in.IsActive && actorID(actor) == id {
		return nil, domain.ErrSelfModification
	}
	if in.Role != nil && !entity.IsValidRole(*in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
	}
	var password string
	if in.Password != nil {
		var err error
		if password, err = auth.HashPassword(uc.scheme, *in.Password); err != nil {
			return nil, err
		}
	}

	var updated entity.User
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindUser(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		if in.Username != nil {
			name := strings.TrimSpace(*in.Username)
			if usernameTaken(doc.Users, name, id) {
				return domain.ErrDuplicate
			}
			doc.Users[i].Username = name
		}
		u := &doc.Users[i]
		if in.Password != nil {
			u.Password = password
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Phone != nil {
			u.Phone = *in.Phone
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		u.UpdatedAt = uc.now().UTC()
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if actor != nil {
		if err := actor.RefreshSnapshot(ctx, updated); err != nil {
			return nil, err
		}
	}
	resp := dto.ToUserResponse(updated)
	return &resp, nil
}

// Delete borrarse a sí mismo: ErrSelfModification; la lista queda intacta.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if actorID(actor) == id {
		return domain.ErrSelfModification
	}
	return uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindUser(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		doc.Users = slices.Delete(doc.Users, i, i+1)
		return nil
	})
}

// ToggleStatus invierte isActive. Sobre sí mismo: ErrSelfModification.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, actor Actor, id string) (*dto.UserResponse, error) {
	if actorID(actor) == id {
		return nil, domain.ErrSelfModification
	}
	var updated entity.User
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindUser(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		doc.Users[i].IsActive = !doc.Users[i].IsActive
		doc.Users[i].UpdatedAt = uc.now().UTC()
		updated = doc.Users[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(updated)
	return &resp, nil
}

func usernameTaken(users []entity.User, username, exceptID string) bool {
	return slices.ContainsFunc(users, func(u entity.User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Username, username)
	})
}
