package inventory

import "errors"

var (
	// ErrSheetNotFound возвращается, когда лист инвентаря на дату не найден
	ErrSheetNotFound = errors.New("inventory: no inventory sheet for this date")

	// ErrSlotNotFound возвращается, когда в листе нет слота с указанным временем
	ErrSlotNotFound = errors.New("inventory: departure time not offered on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("inventory: invalid input data")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("inventory: invalid date range")

	// ErrPartialResize возвращается, когда resize обновил не все листы.
	// Повторный запуск безопасен: операция идемпотентна по каждому дню.
	ErrPartialResize = errors.New("inventory: resize completed partially")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("inventory: internal error")
)
