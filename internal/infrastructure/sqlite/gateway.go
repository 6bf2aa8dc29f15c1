// Package sqlite implementa el DocumentGateway sobre una base SQLite embebida (gorm).
// Cada colección del documento es una tabla; Save reemplaza todas las filas en una transacción.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
)

const metaLastSave = "lastSave"

var _ repository.DocumentGateway = (*Gateway)(nil)

// Gateway DocumentGateway relacional.
type Gateway struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// Open abre (o crea) el fichero SQLite y migra las tablas.
func Open(path string, log zerolog.Logger, now func() time.Time) (*Gateway, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(log.With().Str("driver", "gorm").Logger()),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&userModel{},
		&categoryModel{},
		&productModel{},
		&saleModel{},
		&saleItemModel{},
		&metaModel{},
		&settingModel{},
	); err != nil {
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Gateway{db: db, log: log, now: now}, nil
}

// Close libera la conexión subyacente.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load lee todas las tablas. Sin usuarios se considera una base nueva: documento semilla.
func (g *Gateway) Load(ctx context.Context) (*entity.Document, error) {
	db := g.db.WithContext(ctx)

	var users []userModel
	if err := db.Order("position").Find(&users).Error; err != nil {
		return nil, g.storageErr("leer usuarios", err)
	}
	if len(users) == 0 {
		g.log.Info().Msg("base sqlite vacía, se usan los datos iniciales")
		return entity.SeedDocument(g.now()), nil
	}

	var categories []categoryModel
	if err := db.Order("position").Find(&categories).Error; err != nil {
		return nil, g.storageErr("leer categorías", err)
	}
	var products []productModel
	if err := db.Order("position").Find(&products).Error; err != nil {
		return nil, g.storageErr("leer productos", err)
	}
	var sales []saleModel
	if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Order("position").Find(&sales).Error; err != nil {
		return nil, g.storageErr("leer ventas", err)
	}

	doc := &entity.Document{
		Users:      make([]entity.User, len(users)),
		Categories: make([]entity.Category, len(categories)),
		Products:   make([]entity.Product, len(products)),
		Sales:      make([]entity.Sale, len(sales)),
	}
	for i, m := range users {
		doc.Users[i] = m.toEntity()
	}
	for i, m := range categories {
		doc.Categories[i] = m.toEntity()
	}
	for i, m := range products {
		doc.Products[i] = m.toEntity()
	}
	for i, m := range sales {
		doc.Sales[i] = m.toEntity()
	}

	var meta metaModel
	err := db.Where(&metaModel{Key: metaLastSave}).Take(&meta).Error
	switch {
	case err == nil:
		if t, perr := time.Parse(time.RFC3339Nano, meta.Value); perr == nil {
			doc.LastSave = t
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, g.storageErr("leer meta", err)
	}

	persistence.RevealUsers(doc.Users)
	return doc, nil
}

// Save reemplaza el contenido de todas las tablas en una única transacción.
func (g *Gateway) Save(ctx context.Context, doc *entity.Document) error {
	doc.LastSave = g.now().UTC()
	users := persistence.ObfuscateUsers(doc.Users)

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&saleItemModel{}, &saleModel{}, &productModel{}, &categoryModel{}, &userModel{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("vaciar tabla: %w", err)
			}
		}

		if len(users) > 0 {
			rows := make([]userModel, len(users))
			for i, u := range users {
				rows[i] = toUserModel(u, i)
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insertar usuarios: %w", err)
			}
		}
		if len(doc.Categories) > 0 {
			rows := make([]categoryModel, len(doc.Categories))
			for i, c := range doc.Categories {
				rows[i] = toCategoryModel(c, i)
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insertar categorías: %w", err)
			}
		}
		if len(doc.Products) > 0 {
			rows := make([]productModel, len(doc.Products))
			for i, p := range doc.Products {
				rows[i] = toProductModel(p, i)
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insertar productos: %w", err)
			}
		}
		// Las ventas se insertan una a una para que gorm cree también sus líneas.
		for i, s := range doc.Sales {
			row := toSaleModel(s, i)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insertar venta %s: %w", s.ID, err)
			}
		}

		meta := metaModel{Key: metaLastSave, Value: doc.LastSave.Format(time.RFC3339Nano)}
		if err := tx.Save(&meta).Error; err != nil {
			return fmt.Errorf("guardar meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return g.storageErr("guardar documento", err)
	}
	return nil
}

func (g *Gateway) storageErr(op string, err error) error {
	g.log.Error().Err(err).Str("op", op).Msg("sqlite")
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
