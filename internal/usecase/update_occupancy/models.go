package update_occupancy

import (
	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// Request модель запроса изменения занятости слота
type Request struct {
	PackageType domain.PackageType
	PackageID   int64
	Date        string              // Дата отправления "2006-01-02"
	Time        timeofday.TimeOfDay // Время отправления
	Persons     int                 // Число мест для добавления или освобождения
	Direction   domain.OccupancyDirection
}

// Response состояние слота после применения изменения
type Response struct {
	BookedCount      int
	AvailableSlots   int
	MinimumGroupSize int
}
