package usecase

import (
	"context"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// Actor sesión que ejecuta la operación (lo implementa *auth.Manager).
type Actor interface {
	CurrentUser() (entity.User, bool)
	RefreshSnapshot(ctx context.Context, user entity.User) error
}

func actorID(a Actor) string {
	if a == nil {
		return ""
	}
	u, ok := a.CurrentUser()
	if !ok {
		return ""
	}
	return u.ID
}
