package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/domain/sales"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	store    *store.Store
	lowStock int
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. lowStock es el umbral estricto de stock bajo.
func NewProductUseCase(st *store.Store, lowStock int, now func() time.Time) *ProductUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProductUseCase{store: st, lowStock: lowStock, now: now}
}

// Create crea un nuevo producto. Precios negativos: ErrInvalidInput.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.CostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	product := entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		Quantity:    in.Quantity,
		Category:    in.Category,
		Size:        in.Size,
		Color:       in.Color,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		doc.Products = append(doc.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product, uc.lowStock)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	var resp *dto.ProductResponse
	err := uc.store.View(func(doc *entity.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		r := dto.ToProductResponse(doc.Products[i], uc.lowStock)
		resp = &r
		return nil
	})
	return resp, err
}

// List lista productos ordenados por nombre, con filtros opcionales.
func (uc *ProductUseCase) List(filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var items []dto.ProductResponse
	err := uc.store.View(func(doc *entity.Document) error {
		for _, p := range doc.Products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if filter.LowStock && !sales.IsLowStock(p, uc.lowStock) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			items = append(items, dto.ToProductResponse(p, uc.lowStock))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b dto.ProductResponse) int { return cmp.Compare(a.Name, b.Name) })
	if items == nil {
		items = []dto.ProductResponse{}
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update aplica solo los campos presentes.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if (in.Price != nil && in.Price.IsNegative()) || (in.CostPrice != nil && in.CostPrice.IsNegative()) {
		return nil, fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}
	var updated entity.Product
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		p := &doc.Products[i]
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.CostPrice != nil {
			p.CostPrice = *in.CostPrice
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Size != nil {
			p.Size = *in.Size
		}
		if in.Color != nil {
			p.Color = *in.Color
		}
		if in.Image != nil {
			p.Image = *in.Image
		}
		p.UpdatedAt = uc.now().UTC()
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(updated, uc.lowStock)
	return &resp, nil
}

// AdjustStock suma delta al stock (reposición o corrección de inventario).
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, delta int) (*dto.ProductResponse, error) {
	var updated entity.Product
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		doc.Products[i].Quantity += delta
		doc.Products[i].UpdatedAt = uc.now().UTC()
		updated = doc.Products[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(updated, uc.lowStock)
	return &resp, nil
}

// Delete elimina un producto; las ventas conservan su nombre en las líneas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Mutate(ctx, func(doc *entity.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		doc.Products = slices.Delete(doc.Products, i, i+1)
		return nil
	})
}
