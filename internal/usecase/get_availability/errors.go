package get_availability

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или скрыт
	ErrEventTypeNotFound = errors.New("event type not found")

	// ErrAccessDenied возвращается, когда тип события принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
