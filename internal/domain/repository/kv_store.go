package repository

import "context"

// KeyValueStore define el puerto "persistir bytes / recuperar bytes" (DIP).
// Get devuelve found=false sin error cuando la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
