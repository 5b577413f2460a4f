package dto

// GenerateReportResponse confirmación con la URL pública del PDF subido.
type GenerateReportResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
