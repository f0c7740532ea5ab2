package update_occupancy

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	updateOccupancy "github.com/m04kA/TMS-InventoryService/internal/usecase/update_occupancy"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// UpdateOccupancyRequest HTTP request model.
// Вызывается подсистемой бронирований после того, как бронирование
// надежно записано у нее; при отказе леджера она компенсирует свою запись.
type UpdateOccupancyRequest struct {
	PackageType string `json:"packageType"`
	PackageID   int64  `json:"packageId"`
	Date        string `json:"date"`      // "2026-09-10"
	Time        string `json:"time"`      // "14:00" или "2:00 PM"
	Persons     int    `json:"persons"`
	Direction   string `json:"direction"` // "add" | "subtract"
}

// OccupancyResponse состояние слота после применения изменения
type OccupancyResponse struct {
	BookedCount      int `json:"bookedCount"`
	AvailableSlots   int `json:"availableSlots"`
	MinimumGroupSize int `json:"minimumGroupSize"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateOccupancyRequest) ToUseCaseRequest() (*updateOccupancy.Request, error) {
	packageType, err := domain.ParsePackageType(r.PackageType)
	if err != nil {
		return nil, err
	}

	departureTime, err := timeofday.Parse(r.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", r.Time)
	}

	direction, ok := domain.ParseOccupancyDirection(r.Direction)
	if !ok {
		return nil, fmt.Errorf("invalid direction %q", r.Direction)
	}

	return &updateOccupancy.Request{
		PackageType: packageType,
		PackageID:   r.PackageID,
		Date:        r.Date,
		Time:        departureTime,
		Persons:     r.Persons,
		Direction:   direction,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateOccupancy.Response) *OccupancyResponse {
	return &OccupancyResponse{
		BookedCount:      resp.BookedCount,
		AvailableSlots:   resp.AvailableSlots,
		MinimumGroupSize: resp.MinimumGroupSize,
	}
}
