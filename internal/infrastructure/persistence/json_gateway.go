package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// DocumentKey clave bajo la que se guarda el documento completo.
const DocumentKey = "salmichou-data"

var _ repository.DocumentGateway = (*JSONGateway)(nil)

// JSONGateway guarda el Document como un único valor JSON en un KeyValueStore.
type JSONGateway struct {
	store repository.KeyValueStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewJSONGateway construye el gateway. now puede ser nil (time.Now).
func NewJSONGateway(store repository.KeyValueStore, log zerolog.Logger, now func() time.Time) *JSONGateway {
	if now == nil {
		now = time.Now
	}
	return &JSONGateway{store: store, log: log, now: now}
}

// Load devuelve el documento almacenado con las contraseñas reveladas.
// Documento ausente o JSON corrupto: documento semilla (el error de parseo solo se registra).
// Un fallo de lectura del medio sí se devuelve, para no pisar datos reales con la semilla.
func (g *JSONGateway) Load(ctx context.Context) (*entity.Document, error) {
	raw, found, err := g.store.Get(ctx, DocumentKey)
	if err != nil {
		g.log.Error().Err(err).Msg("lectura del documento fallida")
		return nil, fmt.Errorf("%w: leer documento: %w", domain.ErrStorage, err)
	}
	if !found {
		g.log.Info().Msg("sin documento almacenado, se usan los datos iniciales")
		return entity.SeedDocument(g.now()), nil
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		g.log.Warn().Err(err).Msg("documento almacenado ilegible, se usan los datos iniciales")
		return entity.SeedDocument(g.now()), nil
	}
	return doc, nil
}

// Save sella lastSave y escribe una copia con las contraseñas ofuscadas.
func (g *JSONGateway) Save(ctx context.Context, doc *entity.Document) error {
	doc.LastSave = g.now().UTC()
	raw, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: serializar documento: %w", domain.ErrStorage, err)
	}
	if err := g.store.Set(ctx, DocumentKey, raw); err != nil {
		g.log.Error().Err(err).Msg("escritura del documento fallida")
		return fmt.Errorf("%w: escribir documento: %w", domain.ErrStorage, err)
	}
	return nil
}

// DecodeDocument parsea un documento persistido: normaliza colecciones y revela contraseñas.
func DecodeDocument(raw []byte) (*entity.Document, error) {
	var doc entity.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	doc.Normalize()
	RevealUsers(doc.Users)
	return &doc, nil
}

// EncodeDocument serializa una copia del documento con las contraseñas ofuscadas.
func EncodeDocument(doc *entity.Document) ([]byte, error) {
	cp := doc.Clone()
	cp.Users = ObfuscateUsers(cp.Users)
	return json.Marshal(cp)
}
