package check_availability

import "errors"

// Бизнес-отказы (cutoff, минимальный размер группы, нехватка мест) не
// являются ошибками: они возвращаются как обычный результат с reason,
// поскольку UI бронирования показывает этот текст напрямую.
var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("check_availability: package not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
