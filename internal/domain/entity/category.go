package entity

// Category categoría de productos; el nombre es único y es lo que guardan los productos.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
