package catalogservice

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// packageDTO модель пакета из CatalogService.
// Каталог исторически отдает время отправления и в 24-часовом,
// и в 12-часовом формате ("09:00", "2:00 PM") - парсим оба.
type packageDTO struct {
	PackageType          string   `json:"package_type"`
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	DepartureTimes       []string `json:"departure_times"`
	CapacityPerSlot      int      `json:"capacity_per_slot"`
	MinimumPersonDefault int      `json:"minimum_person_default"`
	IsPrivate            bool     `json:"is_private"`
	IsActive             bool     `json:"is_active"`
}

// packageRefDTO ссылка на пакет в списке активных пакетов
type packageRefDTO struct {
	PackageType string `json:"package_type"`
	ID          int64  `json:"id"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toDomain конвертирует DTO в доменную модель пакета
func (d *packageDTO) toDomain() (*domain.Package, error) {
	packageType, err := domain.ParsePackageType(d.PackageType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	departureTimes := make([]timeofday.TimeOfDay, 0, len(d.DepartureTimes))
	for _, raw := range d.DepartureTimes {
		t, err := timeofday.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: departure time %q: %v", ErrInvalidResponse, raw, err)
		}
		departureTimes = append(departureTimes, t)
	}

	return &domain.Package{
		Type:                 packageType,
		ID:                   d.ID,
		Name:                 d.Name,
		DepartureTimes:       departureTimes,
		CapacityPerSlot:      d.CapacityPerSlot,
		MinimumPersonDefault: d.MinimumPersonDefault,
		IsPrivate:            d.IsPrivate,
		IsActive:             d.IsActive,
	}, nil
}
