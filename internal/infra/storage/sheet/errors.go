package sheet

import "errors"

var (
	// ErrSheetNotFound возвращается, когда лист инвентаря на дату не найден
	ErrSheetNotFound = errors.New("sheet.repository: day slot sheet not found")

	// ErrSlotNotFound возвращается, когда в листе нет слота с указанным временем
	ErrSlotNotFound = errors.New("sheet.repository: slot not found in sheet")

	// ErrSheetExists возвращается при попытке создать лист на дату, для которой он уже есть
	ErrSheetExists = errors.New("sheet.repository: sheet already exists for this date")

	// ErrNoTransaction возвращается, когда мутация слота вызвана вне транзакции
	ErrNoTransaction = errors.New("sheet.repository: slot mutation requires an active transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sheet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sheet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sheet.repository: failed to scan row")

	// ErrEncodeSlots возвращается при ошибке (де)сериализации массива слотов
	ErrEncodeSlots = errors.New("sheet.repository: failed to encode slots")
)
