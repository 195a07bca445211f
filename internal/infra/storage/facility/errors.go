package facility

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика площадки не сохранена
	ErrPolicyNotFound = errors.New("facility.repository: policy not found")

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("facility.repository: blocked date not found")

	// ErrBlockedDateExists возвращается при попытке повторно заблокировать дату
	ErrBlockedDateExists = errors.New("facility.repository: blocked date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
