package kv_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
)

// ──────────────────────────────────────────────────────────────────────────────
// Contrato común del puerto KeyValueStore
// ──────────────────────────────────────────────────────────────────────────────

func exerciseStore(t *testing.T, s repository.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "salmichou-data")
	require.NoError(t, err)
	assert.False(t, found, "clave inexistente no es error")

	require.NoError(t, s.Set(ctx, "salmichou-data", []byte(`{"users":[]}`)))
	got, found, err := s.Get(ctx, "salmichou-data")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"users":[]}`, string(got))

	require.NoError(t, s.Set(ctx, "salmichou-data", []byte(`{"users":[1]}`)))
	got, _, _ = s.Get(ctx, "salmichou-data")
	assert.JSONEq(t, `{"users":[1]}`, string(got))

	require.NoError(t, s.Delete(ctx, "salmichou-data"))
	_, found, err = s.Get(ctx, "salmichou-data")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, s.Delete(ctx, "no-existe"), "borrar clave inexistente no es error")
}

func TestMemoryStore_Contrato(t *testing.T) {
	exerciseStore(t, kv.NewMemoryStore())
}

func TestFileStore_Contrato(t *testing.T) {
	s, err := kv.NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestNamespace_Contrato(t *testing.T) {
	exerciseStore(t, kv.Namespace(kv.NewMemoryStore(), "session:abc:"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos específicos
// ──────────────────────────────────────────────────────────────────────────────

func TestMemoryStore_CopiaValores(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'z'

	got, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func TestFileStore_EscapaClaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := kv.NewFileStore(fs, "/data")
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "session:a/b:currentUser", []byte("{}")))

	ok, err := afero.Exists(fs, "/data/session:a%2Fb:currentUser.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStore_SinTemporalesTrasEscribir(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := kv.NewFileStore(fs, "/data")
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "k", []byte("1")))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestNamespace_AislaClientes(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemoryStore()
	a := kv.Namespace(base, "session:a:")
	b := kv.Namespace(base, "session:b:")

	require.NoError(t, a.Set(ctx, "currentUser", []byte("A")))
	_, found, err := b.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.False(t, found)

	raw, found, _ := base.Get(ctx, "session:a:currentUser")
	require.True(t, found)
	assert.Equal(t, "A", string(raw))
}
