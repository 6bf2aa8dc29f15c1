package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Paginate recorta items según la página y devuelve los metadatos.
func Paginate[T any](items []T, page PageRequest) ([]T, PageResponse) {
	page.DefaultPage()
	meta := PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)}
	if page.Offset >= len(items) {
		return []T{}, meta
	}
	end := min(page.Offset+page.Limit, len(items))
	return items[page.Offset:end], meta
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
