package payment

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrSavepoint возвращается, когда не удалось создать или откатить savepoint
	ErrSavepoint = errors.New("payment.repository: savepoint error")
)
