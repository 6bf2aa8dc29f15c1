package repository

import (
	"context"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// PreferencesRepository define el puerto de persistencia de Preferences.
type PreferencesRepository interface {
	Load(ctx context.Context) (entity.Preferences, error)
	Save(ctx context.Context, prefs entity.Preferences) error
}
