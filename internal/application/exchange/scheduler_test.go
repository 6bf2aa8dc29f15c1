package exchange

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
)

func newScheduler(t *testing.T, prefs entity.Preferences) (*Scheduler, afero.Fs) {
	t.Helper()
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 6, 5, 18, 30, 0, 0, time.UTC) }

	st := store.New(persistence.NewJSONGateway(kv.NewMemoryStore(), zerolog.Nop(), now), zerolog.Nop())
	require.NoError(t, st.Open(ctx))

	repo := persistence.NewPreferencesRepository(kv.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, repo.Save(ctx, prefs))

	fs := afero.NewMemMapFs()
	return NewScheduler(NewManager(st, zerolog.Nop(), now), repo, fs, "/backups", zerolog.Nop()), fs
}

func TestBackupNow_EscribeRespaldoCompleto(t *testing.T) {
	s, fs := newScheduler(t, entity.DefaultPreferences())

	file, err := s.BackupNow(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file, "salmichou_full_backup_2024-06-05_18-30.json"))

	raw, err := afero.ReadFile(fs, file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type": "full_backup"`)
	assert.Equal(t, file, s.Status().LastFile)
}

func TestBackupNow_ErrorDeEscritura(t *testing.T) {
	s, _ := newScheduler(t, entity.DefaultPreferences())
	s.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := s.BackupNow(context.Background())
	assert.Error(t, err)
	assert.NotEmpty(t, s.Status().LastError)
}

func TestRun_RespaldaMientrasEsteActivo(t *testing.T) {
	prefs := entity.DefaultPreferences()
	prefs.AutoBackup = true
	prefs.BackupInterval = 5
	s, fs := newScheduler(t, prefs)
	s.unit = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		ok, _ := afero.Exists(fs, "/backups/salmichou_full_backup_2024-06-05_18-30.json")
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
	assert.True(t, s.Status().Enabled)
	assert.Equal(t, 5, s.Status().IntervalMinutes)
}

func TestRun_DesactivadoNoEscribe(t *testing.T) {
	s, fs := newScheduler(t, entity.DefaultPreferences())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	ok, err := afero.DirExists(fs, "/backups")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Status().Enabled)
}
