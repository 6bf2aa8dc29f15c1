package repository

import (
	"context"

	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// DocumentGateway define el puerto de persistencia del Document completo.
// Load nunca devuelve un documento nil sin error; Save reescribe el documento entero.
type DocumentGateway interface {
	Load(ctx context.Context) (*entity.Document, error)
	Save(ctx context.Context, doc *entity.Document) error
}
