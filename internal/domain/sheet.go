package domain

import (
	"time"

	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// SlotKey ключ листа инвентаря: (тип пакета, пакет, календарная дата
// в гражданской таймзоне)
type SlotKey struct {
	PackageType PackageType
	PackageID   int64
	Date        string // "2006-01-02"
}

// DaySlotSheet is the per-(package, calendar-date) inventory record holding
// all departure-time slots for that day. At most one sheet exists per key;
// slots are unique by time within the sheet.
type DaySlotSheet struct {
	ID          int64
	PackageType PackageType
	PackageID   int64
	Date        string
	// Capacity is an informational sheet-level mirror of per-slot capacity;
	// the ledger never consults it.
	Capacity int
	Slots    []SlotRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key возвращает ключ листа
func (s *DaySlotSheet) Key() SlotKey {
	return SlotKey{PackageType: s.PackageType, PackageID: s.PackageID, Date: s.Date}
}

// FindSlot возвращает слот с указанным временем отправления, либо nil
func (s *DaySlotSheet) FindSlot(t timeofday.TimeOfDay) *SlotRecord {
	for i := range s.Slots {
		if s.Slots[i].Time == t {
			return &s.Slots[i]
		}
	}
	return nil
}

// TotalBooked возвращает суммарную занятость листа по всем слотам
func (s *DaySlotSheet) TotalBooked() int {
	total := 0
	for i := range s.Slots {
		total += s.Slots[i].BookedCount
	}
	return total
}

// TotalCapacity возвращает суммарную вместимость листа по всем слотам
func (s *DaySlotSheet) TotalCapacity() int {
	total := 0
	for i := range s.Slots {
		total += s.Slots[i].Capacity
	}
	return total
}

// NewDaySlotSheet строит пустой лист инвентаря для пакета на дату:
// по одному слоту на каждое время отправления
func NewDaySlotSheet(pkg *Package, date string) *DaySlotSheet {
	slots := make([]SlotRecord, 0, len(pkg.DepartureTimes))
	for _, t := range pkg.DepartureTimes {
		slots = append(slots, SlotRecord{
			Time:              t,
			Capacity:          pkg.CapacityPerSlot,
			BookedCount:       0,
			MinimumGroupSize:  pkg.MinimumPersonDefault,
			ManuallyAvailable: true,
		})
	}

	return &DaySlotSheet{
		PackageType: pkg.Type,
		PackageID:   pkg.ID,
		Date:        date,
		Capacity:    pkg.CapacityPerSlot,
		Slots:       slots,
	}
}

// DateSummary агрегированная статистика по одной дате для админ-панели
type DateSummary struct {
	Date      string
	Capacity  int
	Booked    int
	Available int
}
