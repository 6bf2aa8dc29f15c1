package exchange_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Importación sobre el gateway SQLite (id como clave primaria)
// ──────────────────────────────────────────────────────────────────────────────

func newSQLiteManager(t *testing.T) (*exchange.Manager, *store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salmichou.db")
	gw, err := sqlite.Open(path, zerolog.Nop(), clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	st := store.New(gw, zerolog.Nop())
	require.NoError(t, st.Open(context.Background()))
	return exchange.NewManager(st, zerolog.Nop(), clock), st, path
}

func TestImportSQLite_SinIDsSeRechazaYNoBloqueaGuardados(t *testing.T) {
	m, st, _ := newSQLiteManager(t)
	ctx := context.Background()

	raw := `{"type":"products","data":[{"name":"A","price":1},{"name":"B","price":2}]}`
	_, err := m.Import(ctx, []byte(raw), exchange.ImportAuto)
	require.ErrorIs(t, err, domain.ErrValidation)

	doc, err := st.Snapshot()
	require.NoError(t, err)
	assert.Len(t, doc.Products, 3, "la importación rechazada no toca el documento")

	assert.NoError(t, st.Mutate(ctx, func(*entity.Document) error { return nil }))
}

func TestImportSQLite_IDsDuplicados(t *testing.T) {
	m, st, _ := newSQLiteManager(t)

	raw := `{"type":"categories","data":[{"id":"c1","name":"jouets"},{"id":"c1","name":"bains"}]}`
	_, err := m.Import(context.Background(), []byte(raw), exchange.ImportAuto)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `"c1" duplicado`)

	doc, _ := st.Snapshot()
	assert.Len(t, doc.Categories, 3)
}

func TestImportSQLite_FalloDeGuardadoNoDejaRestos(t *testing.T) {
	_, st, _ := newSQLiteManager(t)
	ctx := context.Background()

	// La clave primaria duplicada solo la detecta la base; Commit debe descartar la copia.
	err := st.Commit(ctx, func(doc *entity.Document) error {
		doc.Products = []entity.Product{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}}
		return nil
	})
	require.ErrorIs(t, err, domain.ErrStorage)

	doc, _ := st.Snapshot()
	assert.Len(t, doc.Products, 3)
	assert.NoError(t, st.Mutate(ctx, func(*entity.Document) error { return nil }),
		"los guardados siguientes funcionan")
}

func TestImportSQLite_ValidaSePersiste(t *testing.T) {
	m, st, path := newSQLiteManager(t)
	ctx := context.Background()

	raw := `{"type":"products","data":[{"id":"p9","name":"Gigoteuse","price":22000,"costPrice":12000,"quantity":4}]}`
	_, err := m.Import(ctx, []byte(raw), exchange.ImportAuto)
	require.NoError(t, err)
	require.NoError(t, st.Close(ctx))

	gw, err := sqlite.Open(path, zerolog.Nop(), clock)
	require.NoError(t, err)
	defer gw.Close()
	doc, err := gw.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	assert.Equal(t, "Gigoteuse", doc.Products[0].Name)
}
