package domain

// Booking policy constants
const (
	// CutoffHours бронирование закрывается за 10 часов до отправления
	CutoffHours = 10

	// HorizonDays скользящий горизонт генерации инвентаря: today+1 .. today+HorizonDays
	HorizonDays = 90

	// MinimumGroupSizeFloor минимальный размер группы никогда не опускается ниже 1
	MinimumGroupSizeFloor = 1
)

// Business validation constants
const (
	MinCapacityPerSlot = 1
	MaxCapacityPerSlot = 500
	MaxPersonsPerOrder = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
