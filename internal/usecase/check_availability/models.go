package check_availability

import (
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// Request модель запроса проверки доступности слота.
// Now передается явно с границы (HTTP-слой подставляет time.Now,
// тесты - фиксированные моменты); usecase сам часы не читает.
type Request struct {
	PackageType domain.PackageType
	PackageID   int64
	Date        string              // Дата отправления "2006-01-02" (гражданская таймзона)
	Time        timeofday.TimeOfDay // Время отправления
	Persons     int                 // Запрошенный размер группы
	Now         time.Time           // Текущий момент
}

// Response результат проверки доступности.
// Reason пустой при Available=true; иначе содержит человекочитаемую
// причину отказа, которую UI показывает напрямую.
type Response struct {
	Available        bool
	AvailableSlots   int    // Остаток мест (информационно, даже при отказе)
	Reason           string
	MinimumGroupSize int // Действующий минимальный размер группы (0, если слот не найден)
}

// Человекочитаемые причины отказа
const (
	ReasonSameDayClosed        = "bookings must be made at least one day before departure"
	ReasonNoInventory          = "no inventory for this date"
	ReasonTimeNotOffered       = "this departure time is not offered"
	ReasonManuallyClosed       = "this departure time is currently unavailable"
	ReasonInsufficientCapacity = "insufficient capacity for the requested group size"
)
