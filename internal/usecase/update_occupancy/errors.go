package update_occupancy

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("update_occupancy: package not found")

	// ErrSlotNotFound возвращается, когда лист или слот не найден
	ErrSlotNotFound = errors.New("update_occupancy: slot not found")

	// ErrCapacityExceeded возвращается, когда добавление превысило бы
	// вместимость слота. Занятость не изменяется - частичных зачислений нет.
	ErrCapacityExceeded = errors.New("update_occupancy: capacity exceeded")

	// ErrConcurrencyConflict возвращается после исчерпания повторов
	// при конфликтах сериализации. Клиент может повторить запрос.
	ErrConcurrencyConflict = errors.New("update_occupancy: concurrency conflict, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_occupancy: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_occupancy: internal error")
)
