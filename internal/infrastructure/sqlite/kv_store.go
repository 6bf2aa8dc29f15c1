package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
)

// settingModel par clave/valor fuera del documento (preferencias).
type settingModel struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

func (settingModel) TableName() string { return "settings" }

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore KeyValueStore sobre la tabla settings de la misma base que el Gateway.
type KVStore struct {
	db *gorm.DB
}

// KV devuelve el almacenamiento clave/valor que comparte conexión con el gateway.
func (g *Gateway) KV() *KVStore {
	return &KVStore{db: g.db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row settingModel
	err := s.db.WithContext(ctx).Where(&settingModel{Key: key}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: sqlite get %s: %w", domain.ErrStorage, key, err)
	}
	return row.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingModel{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("%w: sqlite set %s: %w", domain.ErrStorage, key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&settingModel{Key: key}).Error; err != nil {
		return fmt.Errorf("%w: sqlite delete %s: %w", domain.ErrStorage, key, err)
	}
	return nil
}
