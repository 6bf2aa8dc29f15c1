package kv

import (
	"context"

	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

type namespaced struct {
	inner  repository.KeyValueStore
	prefix string
}

// Namespace antepone prefix a todas las claves. Se usa para dar a cada cliente HTTP su
// propio almacenamiento local (session:<id>:currentUser, ...).
func Namespace(inner repository.KeyValueStore, prefix string) repository.KeyValueStore {
	return &namespaced{inner: inner, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
