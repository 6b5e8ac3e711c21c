package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// DefaultPage aplica valores por defecto y límites a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// OptionalPage como DefaultPage, pero sin limit deja Limit en 0 (sin paginar).
func (p *PageRequest) OptionalPage() {
	if p.Limit <= 0 {
		p.Limit = 0
		if p.Offset < 0 {
			p.Offset = 0
		}
		return
	}
	p.DefaultPage()
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP. Field indica el campo de la petición a corregir.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse respuesta de una mutación exitosa: mensaje legible más la entidad afectada.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
