package resize_slots

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// ResizeRequest HTTP request model: новое расписание отправлений и
// вместимость пакета. Применяется ко всем будущим датам.
type ResizeRequest struct {
	DepartureTimes  []string `json:"departureTimes"`  // ["09:00", "14:00"]
	CapacityPerSlot int      `json:"capacityPerSlot"`
}

// ResizeResponse результат пересборки
type ResizeResponse struct {
	UpdatedSheets int `json:"updatedSheets"`
}

// ParseTimes парсит расписание отправлений, отклоняя дубликаты
func (r *ResizeRequest) ParseTimes() ([]timeofday.TimeOfDay, error) {
	if len(r.DepartureTimes) == 0 {
		return nil, fmt.Errorf("departureTimes must not be empty")
	}

	times := make([]timeofday.TimeOfDay, 0, len(r.DepartureTimes))
	seen := make(map[timeofday.TimeOfDay]struct{}, len(r.DepartureTimes))

	for _, raw := range r.DepartureTimes {
		t, err := timeofday.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid departure time %q", raw)
		}
		if _, ok := seen[t]; ok {
			return nil, fmt.Errorf("duplicate departure time %q", raw)
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	return times, nil
}
