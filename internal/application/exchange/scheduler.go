package exchange

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// idlePoll cada cuánto se vuelven a leer las preferencias con el respaldo desactivado.
const idlePoll = time.Minute

// Scheduler escribe un full_backup cada backupInterval minutos mientras autoBackup esté activo.
// Las preferencias se releen en cada vuelta, así que los cambios aplican sin reiniciar.
type Scheduler struct {
	manager *Manager
	prefs   repository.PreferencesRepository
	fs      afero.Fs
	dir     string
	log     zerolog.Logger
	unit    time.Duration

	mu     sync.Mutex
	status dto.BackupStatus
}

// NewScheduler construye el programador; los archivos van a dir dentro de fs.
func NewScheduler(m *Manager, prefs repository.PreferencesRepository, fs afero.Fs, dir string, log zerolog.Logger) *Scheduler {
	return &Scheduler{manager: m, prefs: prefs, fs: fs, dir: dir, log: log, unit: time.Minute}
}

// Run bloquea hasta que ctx se cancela. Los fallos se registran y no detienen el ciclo.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Str("dir", s.dir).Msg("programador de respaldos iniciado")
	for {
		wait := idlePoll
		enabled := false
		prefs, err := s.prefs.Load(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("no se pudieron leer las preferencias de respaldo")
		} else if prefs.AutoBackup && prefs.BackupInterval > 0 {
			enabled = true
			wait = time.Duration(prefs.BackupInterval) * s.unit
		}
		s.setEnabled(enabled, prefs.BackupInterval)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info().Msg("programador de respaldos detenido")
			return
		case <-timer.C:
		}

		if enabled {
			if _, err := s.BackupNow(ctx); err != nil {
				s.log.Error().Err(err).Msg("respaldo automático fallido")
			}
		}
	}
}

// BackupNow escribe un full_backup y devuelve la ruta del archivo.
func (s *Scheduler) BackupNow(ctx context.Context) (string, error) {
	raw, name, err := s.manager.Export(TypeFullBackup)
	if err != nil {
		s.recordFailure(err)
		return "", err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		err = fmt.Errorf("exchange: crear %s: %w", s.dir, err)
		s.recordFailure(err)
		return "", err
	}
	file := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, file, raw, 0o644); err != nil {
		err = fmt.Errorf("exchange: escribir %s: %w", file, err)
		s.recordFailure(err)
		return "", err
	}

	s.mu.Lock()
	s.status.LastBackup = s.manager.now().UTC().Format(time.RFC3339)
	s.status.LastFile = file
	s.status.LastError = ""
	s.mu.Unlock()

	s.log.Info().Str("file", file).Int("bytes", len(raw)).Msg("respaldo escrito")
	return file, nil
}

// Status estado del último respaldo.
func (s *Scheduler) Status() dto.BackupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) setEnabled(enabled bool, interval int) {
	s.mu.Lock()
	s.status.Enabled = enabled
	s.status.IntervalMinutes = interval
	s.mu.Unlock()
}

func (s *Scheduler) recordFailure(err error) {
	s.mu.Lock()
	s.status.LastError = err.Error()
	s.mu.Unlock()
}
