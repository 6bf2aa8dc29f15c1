// Package storage construye, según la configuración, el gateway del documento, el almacén de
// preferencias y el almacenamiento local de las sesiones de cliente.
package storage

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/salmichou-pos/internal/infrastructure/redis"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/salmichou-pos/pkg/config"
)

// sessionTTL caducidad en Redis de las sesiones abandonadas. La expiración real de la sesión la
// decide el Manager con sessionExpiry.
const sessionTTL = 7 * 24 * time.Hour

// Backend recursos de almacenamiento abiertos. Close los libera en orden inverso.
type Backend struct {
	Gateway     repository.DocumentGateway
	Preferences repository.KeyValueStore
	Sessions    repository.KeyValueStore

	closers []func() error
}

// Options dependencias opcionales de Open.
type Options struct {
	Fs  afero.Fs // driver file; por defecto el sistema de ficheros real
	Now func() time.Time
}

// Open abre el backend indicado por STORAGE_DRIVER y SESSION_STORE.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*Backend, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := &Backend{}

	var redisClient *goredis.Client
	redisFor := func() (*goredis.Client, error) {
		if redisClient != nil {
			return redisClient, nil
		}
		c, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisClient = c
		b.closers = append(b.closers, c.Close)
		return c, nil
	}

	var docStore repository.KeyValueStore
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		docStore = kv.NewMemoryStore()
		b.Preferences = docStore
	case config.StorageFile:
		fs, err := kv.NewFileStore(opts.Fs, cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		docStore = fs
		b.Preferences = fs
	case config.StorageRedis:
		c, err := redisFor()
		if err != nil {
			b.Close()
			return nil, err
		}
		store := infraredis.NewKVStore(c, cfg.Redis.Prefix, 0)
		docStore = store
		b.Preferences = store
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { pool.Close(); return nil })
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			b.Close()
			return nil, err
		}
		repo := postgres.NewKVRepository(pool)
		docStore = repo
		b.Preferences = repo
	case config.StorageSQLite:
		gw, err := sqlite.Open(cfg.Storage.SQLitePath, log.With().Str("component", "sqlite").Logger(), opts.Now)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, gw.Close)
		b.Gateway = gw
		b.Preferences = gw.KV()
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
	if b.Gateway == nil {
		b.Gateway = persistence.NewJSONGateway(docStore, log.With().Str("component", "gateway").Logger(), opts.Now)
	}

	switch cfg.Session.Store {
	case config.StorageRedis:
		c, err := redisFor()
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Sessions = infraredis.NewKVStore(c, cfg.Redis.Prefix+":sessions", sessionTTL)
	default:
		b.Sessions = kv.NewMemoryStore()
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("sessions", cfg.Session.Store).
		Msg("almacenamiento listo")
	return b, nil
}

// SessionStorage almacenamiento local del cliente con id de sesión id.
func (b *Backend) SessionStorage(id string) repository.KeyValueStore {
	return kv.Namespace(b.Sessions, "session:"+id+":")
}

// Close libera conexiones y ficheros; devuelve el primer error.
func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}
