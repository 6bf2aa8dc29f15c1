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

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	store *store.Store
	now   func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(st *store.Store, now func() time.Time) *SaleUseCase {
	if now == nil {
		now = time.Now
	}
	return &SaleUseCase{store: st, now: now}
}

// Create registra la venta en nombre del actor y descuenta el stock sin verificar suficiencia.
// Nombre y precio de cada línea se toman del catálogo cuando faltan; una línea de un producto
// que no existe necesita precio explícito (su stock no se toca).
func (uc *SaleUseCase) Create(ctx context.Context, actor Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	employeeID := actorID(actor)
	if employeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	var sale entity.Sale
	err := uc.store.Mutate(ctx, func(doc *entity.Document) error {
		items := make([]entity.SaleItem, 0, len(in.Items))
		for i, req := range in.Items {
			item := entity.SaleItem{ProductID: req.ProductID, ProductName: req.ProductName, Quantity: req.Quantity}
			if j := doc.FindProduct(req.ProductID); j >= 0 {
				if item.ProductName == "" {
					item.ProductName = doc.Products[j].Name
				}
				item.Price = doc.Products[j].Price
			} else if req.Price == nil {
				return fmt.Errorf("%w: línea %d: producto %s desconocido y sin precio", domain.ErrInvalidInput, i+1, req.ProductID)
			}
			if req.Price != nil {
				item.Price = *req.Price
			}
			item.Total = sales.LineTotal(item.Price, item.Quantity)
			items = append(items, item)
		}

		sale = entity.Sale{
			ID:            uuid.New().String(),
			Items:         items,
			TotalAmount:   sales.SumTotals(items),
			PaymentMethod: in.PaymentMethod,
			CustomerName:  strings.TrimSpace(in.CustomerName),
			EmployeeID:    employeeID,
			CreatedAt:     uc.now().UTC(),
		}
		if err := sales.ValidateSale(&sale); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}

		sales.DecrementStock(doc.Products, items)
		doc.Sales = slices.Insert(doc.Sales, 0, sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToSaleResponse(sale)
	return &resp, nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := uc.store.View(func(doc *entity.Document) error {
		for _, s := range doc.Sales {
			if s.ID == id {
				s.Items = slices.Clone(s.Items)
				out = &s
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// List ventas más recientes primero, filtradas por rango de fechas [from, to] y empleado.
func (uc *SaleUseCase) List(filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	from, to, err := parseRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	var list []dto.SaleResponse
	err = uc.store.View(func(doc *entity.Document) error {
		for _, s := range doc.Sales {
			if !from.IsZero() && s.CreatedAt.Before(from) {
				continue
			}
			if !to.IsZero() && s.CreatedAt.After(to) {
				continue
			}
			if filter.EmployeeID != "" && s.EmployeeID != filter.EmployeeID {
				continue
			}
			list = append(list, dto.ToSaleResponse(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(list, func(a, b dto.SaleResponse) int { return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano()) })
	items, page := dto.Paginate(list, filter.PageRequest)
	return &dto.SaleListResponse{Items: items, Page: page}, nil
}

// parseRange acepta RFC3339 o YYYY-MM-DD; una fecha "to" sin hora incluye el día completo.
func parseRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		if from, err = parseDate(fromStr); err != nil {
			return from, to, err
		}
	}
	if toStr != "" {
		if to, err = parseDate(toStr); err != nil {
			return from, to, err
		}
		if len(toStr) == len(time.DateOnly) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}
