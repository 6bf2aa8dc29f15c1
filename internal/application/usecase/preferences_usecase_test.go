package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
)

func newPreferences() *usecase.PreferencesUseCase {
	return usecase.NewPreferencesUseCase(persistence.NewPreferencesRepository(kv.NewMemoryStore(), zerolog.Nop()))
}

func TestPreferences_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	uc := newPreferences()

	prefs, err := uc.Update(ctx, dto.UpdatePreferencesRequest{Language: ptr("en"), AutoBackup: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Language)
	assert.True(t, prefs.AutoBackup)
	assert.Equal(t, 8, prefs.SessionDuration)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestPreferences_ExportImport(t *testing.T) {
	ctx := context.Background()
	uc := newPreferences()

	raw, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"sessionDuration\": 8")

	prefs, err := uc.Import(ctx, []byte(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, "fr", prefs.Language, "mezcla sobre los valores por defecto")
}

func TestPreferences_ImportInvalido(t *testing.T) {
	ctx := context.Background()
	uc := newPreferences()

	_, err := uc.Import(ctx, []byte(`{`))
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = uc.Import(ctx, []byte(`{"language":"de"}`))
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, _ := uc.Get(ctx)
	assert.Equal(t, entity.DefaultPreferences(), got, "nada se guarda")
}
