// Package store mantiene en memoria el Document activo y lo reescribe completo tras cada mutación.
//
// El Store se construye explícitamente (New) y tiene ciclo de vida: Open carga el documento,
// Close hace un último guardado. Un mutex serializa el acceso porque el servidor HTTP es
// concurrente. Mutate no es atómico: si Save falla, la mutación queda aplicada en memoria y se
// devuelve domain.ErrStorage. Commit y Replace trabajan sobre una copia y solo la adoptan
// cuando el guardado tiene éxito (importaciones, restauraciones).
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// Store servicio de dominio sobre un DocumentGateway.
type Store struct {
	gateway repository.DocumentGateway
	log     zerolog.Logger

	mu  sync.Mutex
	doc *entity.Document
}

// New construye el Store sin cargar nada.
func New(gateway repository.DocumentGateway, log zerolog.Logger) *Store {
	return &Store{gateway: gateway, log: log}
}

// Open carga el documento desde el gateway.
func (s *Store) Open(ctx context.Context) error {
	doc, err := s.gateway.Load(ctx)
	if err != nil {
		return fmt.Errorf("store: cargar documento: %w", err)
	}
	doc.Normalize()

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	s.log.Info().
		Int("users", len(doc.Users)).
		Int("products", len(doc.Products)).
		Int("categories", len(doc.Categories)).
		Int("sales", len(doc.Sales)).
		Msg("documento cargado")
	return nil
}

// Close guarda por última vez y libera el documento. Cerrar un Store no abierto no hace nada.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	err := s.save(ctx)
	s.doc = nil
	return err
}

// View da acceso de solo lectura al documento. fn no debe retener referencias.
func (s *Store) View(fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ErrStoreClosed
	}
	return fn(s.doc)
}

// Mutate ejecuta fn sobre el documento y lo guarda completo. Si fn devuelve error no se guarda
// nada (fn debe validar antes de modificar).
func (s *Store) Mutate(ctx context.Context, fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ErrStoreClosed
	}
	if err := fn(s.doc); err != nil {
		return err
	}
	return s.save(ctx)
}

// Commit ejecuta fn sobre una copia del documento. La copia sustituye al documento actual
// solo si se guarda; si fn o el guardado fallan, el documento en memoria no cambia.
func (s *Store) Commit(ctx context.Context, fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ErrStoreClosed
	}
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	return s.swap(ctx, next)
}

// Replace sustituye el documento entero (reset, restauración) y lo guarda. Si el guardado
// falla se conserva el documento anterior.
func (s *Store) Replace(ctx context.Context, doc *entity.Document) error {
	doc.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.ErrStoreClosed
	}
	return s.swap(ctx, doc)
}

// Reset vuelve a los datos iniciales.
func (s *Store) Reset(ctx context.Context, now time.Time) error {
	return s.Replace(ctx, entity.SeedDocument(now))
}

// Snapshot copia profunda del documento actual.
func (s *Store) Snapshot() (*entity.Document, error) {
	var out *entity.Document
	err := s.View(func(doc *entity.Document) error {
		out = doc.Clone()
		return nil
	})
	return out, err
}

// LastSave marca temporal del último guardado correcto.
func (s *Store) LastSave() (time.Time, error) {
	var t time.Time
	err := s.View(func(doc *entity.Document) error {
		t = doc.LastSave
		return nil
	})
	return t, err
}

func (s *Store) save(ctx context.Context) error {
	if err := s.write(ctx, s.doc); err != nil {
		s.log.Error().Err(err).Msg("guardado del documento fallido; los cambios siguen en memoria")
		return err
	}
	return nil
}

func (s *Store) swap(ctx context.Context, next *entity.Document) error {
	if err := s.write(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("guardado del documento fallido; se conserva el documento anterior")
		return err
	}
	s.doc = next
	return nil
}

// write garantiza que cualquier fallo del gateway se pueda reconocer como domain.ErrStorage
// sin repetir el prefijo cuando el gateway ya lo incluye.
func (s *Store) write(ctx context.Context, doc *entity.Document) error {
	err := s.gateway.Save(ctx, doc)
	if err == nil || errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}
