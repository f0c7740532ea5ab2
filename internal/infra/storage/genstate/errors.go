package genstate

import "errors"

var (
	// ErrStateNotFound возвращается, когда для пакета еще не было генерации слотов
	ErrStateNotFound = errors.New("genstate.repository: generation state not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("genstate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("genstate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("genstate.repository: failed to scan row")
)
