package persistence_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
)

func TestPreferences_PorDefecto(t *testing.T) {
	repo := persistence.NewPreferencesRepository(kv.NewMemoryStore(), zerolog.Nop())
	prefs, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPreferences(), prefs)
}

func TestPreferences_MezclaSobreDefectos(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, persistence.PreferencesKey, []byte(`{"language":"en","sessionDuration":2}`)))

	prefs, err := persistence.NewPreferencesRepository(store, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", prefs.Language)
	assert.Equal(t, 2, prefs.SessionDuration)
	assert.Equal(t, 60, prefs.BackupInterval, "campo ausente conserva el defecto")
	assert.Equal(t, "light", prefs.Theme)
}

func TestPreferences_CorruptasDevuelveDefectos(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, persistence.PreferencesKey, []byte(`{`)))

	prefs, err := persistence.NewPreferencesRepository(store, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPreferences(), prefs)
}

func TestPreferences_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewPreferencesRepository(kv.NewMemoryStore(), zerolog.Nop())
	prefs := entity.DefaultPreferences()
	prefs.AutoBackup = true
	prefs.BackupInterval = 15

	require.NoError(t, repo.Save(ctx, prefs))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestMergePreferences_ErrorDeParseo(t *testing.T) {
	_, err := entity.MergePreferences([]byte("nope"))
	assert.ErrorIs(t, err, domain.ErrParse)
}
