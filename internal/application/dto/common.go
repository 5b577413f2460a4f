package dto

// ErrorItem un error individual dentro del sobre de errores.
type ErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP: lista de errores bajo "errors".
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// PageRequest paginación para listados (basada en página, 1-indexada).
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// DefaultPage aplica valores por defecto si Page/Size son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = 50
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPageResponse calcula los metadatos a partir del total de filas.
func NewPageResponse(page, size int, total int64) PageResponse {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return PageResponse{Page: page, Size: size, Total: total, Pages: pages}
}
