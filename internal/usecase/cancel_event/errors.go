package cancel_event

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("cancel_event: event not found")

	// ErrAccessDenied возвращается, когда событие принадлежит другому пользователю
	ErrAccessDenied = errors.New("cancel_event: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_event: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_event: internal error")
)
