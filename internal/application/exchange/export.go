package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// Manager exporta e importa sobre el Store.
type Manager struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewManager construye el Manager; now fija exportedAt y los nombres de archivo.
func NewManager(st *store.Store, log zerolog.Logger, now func() time.Time) *Manager {
	return &Manager{store: st, log: log, now: now}
}

// fullData contenido de un full_backup.
type fullData struct {
	Products   []entity.Product  `json:"products"`
	Categories []entity.Category `json:"categories"`
	Sales      []entity.Sale     `json:"sales"`
	Users      []entity.User     `json:"users"`
}

// Export serializa el sobre del tipo pedido ("full" equivale a full_backup) con sangría de
// dos espacios y devuelve también el nombre de archivo sugerido. Los usuarios salen siempre
// sin contraseña.
func (m *Manager) Export(typ string) ([]byte, string, error) {
	if typ == ImportFull {
		typ = TypeFullBackup
	}
	doc, err := m.store.Snapshot()
	if err != nil {
		return nil, "", err
	}

	var data any
	switch typ {
	case TypeProducts:
		data = doc.Products
	case TypeCategories:
		data = doc.Categories
	case TypeSales:
		data = doc.Sales
	case TypeUsers:
		data = stripPasswords(doc.Users)
	case TypeFullBackup:
		data = fullData{
			Products:   doc.Products,
			Categories: doc.Categories,
			Sales:      doc.Sales,
			Users:      stripPasswords(doc.Users),
		}
	default:
		return nil, "", fmt.Errorf("%w: tipo de exportación %q", domain.ErrInvalidInput, typ)
	}

	now := m.now()
	raw, err := json.MarshalIndent(Envelope{Type: typ, Version: Version, ExportedAt: now.UTC(), Data: data}, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("exchange: serializar %s: %w", typ, err)
	}
	return raw, Filename(typ, now), nil
}

func stripPasswords(users []entity.User) []entity.User {
	out := make([]entity.User, len(users))
	for i, u := range users {
		out[i] = u.WithoutPassword()
	}
	return out
}
