package generate_slots

// GenerateResponse результат генерации горизонта
type GenerateResponse struct {
	CreatedSheets int `json:"createdSheets"`
}
