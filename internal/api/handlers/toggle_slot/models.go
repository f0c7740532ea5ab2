package toggle_slot

import (
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// ToggleSlotRequest HTTP request model: ручное открытие/закрытие слота
type ToggleSlotRequest struct {
	Date      string `json:"date"`      // "2026-09-10"
	Time      string `json:"time"`      // "14:00" или "2:00 PM"
	Available bool   `json:"available"`
}

// SlotStateResponse состояние слота после переключения
type SlotStateResponse struct {
	Time              string `json:"time"`
	Capacity          int    `json:"capacity"`
	BookedCount       int    `json:"bookedCount"`
	MinimumGroupSize  int    `json:"minimumGroupSize"`
	ManuallyAvailable bool   `json:"manuallyAvailable"`
}

// ParseTime парсит время отправления из запроса
func (r *ToggleSlotRequest) ParseTime() (timeofday.TimeOfDay, error) {
	t, err := timeofday.Parse(r.Time)
	if err != nil {
		return timeofday.TimeOfDay{}, fmt.Errorf("invalid time %q", r.Time)
	}
	return t, nil
}

// FromDomainSlot конвертирует слот в HTTP response
func FromDomainSlot(slot *domain.SlotRecord) *SlotStateResponse {
	return &SlotStateResponse{
		Time:              slot.Time.String(),
		Capacity:          slot.Capacity,
		BookedCount:       slot.BookedCount,
		MinimumGroupSize:  slot.MinimumGroupSize,
		ManuallyAvailable: slot.ManuallyAvailable,
	}
}
