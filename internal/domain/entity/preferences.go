package entity

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/salmichou-pos/internal/domain"
)

// Preferences ajustes del cliente guardados bajo la clave salmichou-config.
type Preferences struct {
	SessionDuration int    `json:"sessionDuration"` // horas
	AutoBackup      bool   `json:"autoBackup"`
	BackupInterval  int    `json:"backupInterval"` // minutos
	Language        string `json:"language"`
	Theme           string `json:"theme"`
}

// DefaultPreferences valores por defecto sobre los que se mezcla lo almacenado.
func DefaultPreferences() Preferences {
	return Preferences{
		SessionDuration: 8,
		AutoBackup:      false,
		BackupInterval:  60,
		Language:        "fr",
		Theme:           "light",
	}
}

// Valid comprueba rangos; se usa al importar preferencias.
func (p Preferences) Valid() bool {
	if p.SessionDuration <= 0 || p.BackupInterval <= 0 {
		return false
	}
	return p.Language == "fr" || p.Language == "en"
}

// MergePreferences aplica el JSON sobre los valores por defecto; los campos ausentes se conservan.
func MergePreferences(raw []byte) (Preferences, error) {
	prefs := DefaultPreferences()
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return prefs, nil
}
