package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// PreferencesKey clave de las preferencias del cliente.
const PreferencesKey = "salmichou-config"

var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)

// PreferencesRepo preferencias guardadas como JSON en un KeyValueStore.
type PreferencesRepo struct {
	store repository.KeyValueStore
	log   zerolog.Logger
}

// NewPreferencesRepository construye el repositorio.
func NewPreferencesRepository(store repository.KeyValueStore, log zerolog.Logger) *PreferencesRepo {
	return &PreferencesRepo{store: store, log: log}
}

// Load mezcla lo almacenado sobre DefaultPreferences. JSON corrupto: valores por defecto.
func (r *PreferencesRepo) Load(ctx context.Context) (entity.Preferences, error) {
	raw, found, err := r.store.Get(ctx, PreferencesKey)
	if err != nil {
		return entity.DefaultPreferences(), fmt.Errorf("%w: leer preferencias: %w", domain.ErrStorage, err)
	}
	if !found {
		return entity.DefaultPreferences(), nil
	}
	prefs, err := entity.MergePreferences(raw)
	if err != nil {
		r.log.Warn().Err(err).Msg("preferencias ilegibles, se usan los valores por defecto")
		return entity.DefaultPreferences(), nil
	}
	return prefs, nil
}

// Save reemplaza las preferencias almacenadas.
func (r *PreferencesRepo) Save(ctx context.Context, prefs entity.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("%w: serializar preferencias: %w", domain.ErrStorage, err)
	}
	if err := r.store.Set(ctx, PreferencesKey, raw); err != nil {
		r.log.Error().Err(err).Msg("escritura de preferencias fallida")
		return fmt.Errorf("%w: escribir preferencias: %w", domain.ErrStorage, err)
	}
	return nil
}
