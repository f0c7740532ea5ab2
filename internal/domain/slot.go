package domain

import "github.com/m04kA/TMS-InventoryService/pkg/timeofday"

// SlotRecord is one departure-time entry within a day sheet: the unit of
// capacity and occupancy tracking.
type SlotRecord struct {
	Time              timeofday.TimeOfDay `json:"time"`
	Capacity          int                 `json:"capacity"`
	BookedCount       int                 `json:"booked_count"`
	MinimumGroupSize  int                 `json:"minimum_group_size"`
	ManuallyAvailable bool                `json:"manually_available"`
}

// AvailableSpots returns the remaining capacity of the slot
func (s *SlotRecord) AvailableSpots() int {
	return s.Capacity - s.BookedCount
}

// IsEmpty returns true if nothing has been booked against the slot
func (s *SlotRecord) IsEmpty() bool {
	return s.BookedCount == 0
}

// IsFull returns true if the slot has no remaining capacity
func (s *SlotRecord) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotRecord) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.BookedCount) / float64(s.Capacity) * 100
}

// OccupancyDirection направление изменения занятости слота
type OccupancyDirection string

const (
	DirectionAdd      OccupancyDirection = "add"
	DirectionSubtract OccupancyDirection = "subtract"
)

// ParseOccupancyDirection валидирует строковое представление направления
func ParseOccupancyDirection(s string) (OccupancyDirection, bool) {
	switch OccupancyDirection(s) {
	case DirectionAdd, DirectionSubtract:
		return OccupancyDirection(s), true
	default:
		return "", false
	}
}
