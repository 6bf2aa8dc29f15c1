package dto

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCategoryRequest campos opcionales.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// CategoryResponse salida de una categoría con el número de productos que la usan.
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count"`
}

// DeleteCategoryResponse el borrado no arrastra productos; informa cuántos siguen apuntando al nombre.
type DeleteCategoryResponse struct {
	Deleted          bool `json:"deleted"`
	OrphanedProducts int  `json:"orphaned_products"`
}
