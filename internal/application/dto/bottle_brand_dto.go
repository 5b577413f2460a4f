package dto

// BottleBrandRequest entrada para crear o renombrar una marca.
type BottleBrandRequest struct {
	Name string `json:"name"`
}

// BottleBrandSelector selector id-o-nombre para consultar o borrar una marca.
type BottleBrandSelector struct {
	IDBottleBrand *int64  `json:"id_bottle_brand"`
	Name          *string `json:"name"`
}

// BottleBrandResponse marca en respuestas.
type BottleBrandResponse struct {
	IDBottleBrand int64  `json:"id_bottle_brand"`
	Name          string `json:"name"`
	CreatedAt     int64  `json:"created_at"`
}
