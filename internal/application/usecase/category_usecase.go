package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// CategoryUseCase gestión de categorías. Los productos referencian la categoría por nombre:
// ni renombrar ni borrar una categoría modifica los productos.
type CategoryUseCase struct {
	store *store.Store
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(st *store.Store) *CategoryUseCase {
	return &CategoryUseCase{store: st}
}

// Create nombre duplicado (sin distinguir mayúsculas): ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	cat := entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	if cat.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	var count int
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		if nameTaken(doc.Categories, cat.Name, "") {
			return domain.ErrDuplicate
		}
		doc.Categories = append(doc.Categories, cat)
		count = productsIn(doc, cat.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat, count), nil
}

// List categorías ordenadas por nombre.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	out := []dto.CategoryResponse{}
	err := uc.store.View(func(doc *entity.Document) error {
		for _, c := range doc.Categories {
			out = append(out, *toCategoryResponse(c, productsIn(doc, c.Name)))
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b dto.CategoryResponse) int { return cmp.Compare(a.Name, b.Name) })
	return out, err
}

// Update renombrar a un nombre existente: ErrDuplicate.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var (
		updated entity.Category
		count   int
	)
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindCategory(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			if nameTaken(doc.Categories, name, id) {
				return domain.ErrDuplicate
			}
			doc.Categories[i].Name = name
		}
		if in.Description != nil {
			doc.Categories[i].Description = *in.Description
		}
		updated = doc.Categories[i]
		count = productsIn(doc, updated.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(updated, count), nil
}

// Delete borra la categoría y devuelve cuántos productos siguen apuntando a su nombre.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (*dto.DeleteCategoryResponse, error) {
	var orphans int
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindCategory(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		orphans = productsIn(doc, doc.Categories[i].Name)
		doc.Categories = slices.Delete(doc.Categories, i, i+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteCategoryResponse{Deleted: true, OrphanedProducts: orphans}, nil
}

func nameTaken(cats []entity.Category, name, exceptID string) bool {
	return slices.ContainsFunc(cats, func(c entity.Category) bool {
		return c.ID != exceptID && strings.EqualFold(c.Name, name)
	})
}

func productsIn(doc *entity.Document, category string) int {
	n := 0
	for _, p := range doc.Products {
		if p.Category == category {
			n++
		}
	}
	return n
}

func toCategoryResponse(c entity.Category, count int) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, ProductCount: count}
}
