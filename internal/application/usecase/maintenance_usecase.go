package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/application/store"
)

// MaintenanceUseCase operaciones de administración sobre el documento.
type MaintenanceUseCase struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(st *store.Store, log zerolog.Logger, now func() time.Time) *MaintenanceUseCase {
	if now == nil {
		now = time.Now
	}
	return &MaintenanceUseCase{store: st, log: log, now: now}
}

// Reset reemplaza todos los datos por los iniciales. Irreversible.
func (uc *MaintenanceUseCase) Reset(ctx context.Context, actor Actor) error {
	if err := uc.store.Reset(ctx, uc.now()); err != nil {
		return err
	}
	uc.log.Warn().Str("user_id", actorID(actor)).Msg("datos reinicializados")
	return nil
}

// LastSave marca del último guardado.
func (uc *MaintenanceUseCase) LastSave() (time.Time, error) {
	return uc.store.LastSave()
}
