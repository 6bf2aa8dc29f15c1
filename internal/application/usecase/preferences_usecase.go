package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// PreferencesUseCase lectura, cambio, exportación e importación de preferencias.
type PreferencesUseCase struct {
	repo repository.PreferencesRepository
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(repo repository.PreferencesRepository) *PreferencesUseCase {
	return &PreferencesUseCase{repo: repo}
}

// Get preferencias vigentes (almacenadas sobre los valores por defecto).
func (uc *PreferencesUseCase) Get(ctx context.Context) (entity.Preferences, error) {
	return uc.repo.Load(ctx)
}

// Update aplica los campos presentes y guarda.
func (uc *PreferencesUseCase) Update(ctx context.Context, in dto.UpdatePreferencesRequest) (entity.Preferences, error) {
	prefs, err := uc.repo.Load(ctx)
	if err != nil {
		return prefs, err
	}
	if in.SessionDuration != nil {
		prefs.SessionDuration = *in.SessionDuration
	}
	if in.AutoBackup != nil {
		prefs.AutoBackup = *in.AutoBackup
	}
	if in.BackupInterval != nil {
		prefs.BackupInterval = *in.BackupInterval
	}
	if in.Language != nil {
		prefs.Language = *in.Language
	}
	if in.Theme != nil {
		prefs.Theme = *in.Theme
	}
	if !prefs.Valid() {
		return prefs, domain.ErrValidation
	}
	return prefs, uc.repo.Save(ctx, prefs)
}

// Export JSON indentado de las preferencias vigentes.
func (uc *PreferencesUseCase) Export(ctx context.Context) ([]byte, error) {
	prefs, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(prefs, "", "  ")
}

// Import mezcla el JSON sobre los valores por defecto. JSON inválido: ErrParse; valores fuera de
// rango: ErrValidation. En ambos casos no se guarda nada.
func (uc *PreferencesUseCase) Import(ctx context.Context, raw []byte) (entity.Preferences, error) {
	prefs, err := entity.MergePreferences(raw)
	if err != nil {
		return prefs, err
	}
	if !prefs.Valid() {
		return prefs, fmt.Errorf("%w: preferencias fuera de rango", domain.ErrValidation)
	}
	return prefs, uc.repo.Save(ctx, prefs)
}
