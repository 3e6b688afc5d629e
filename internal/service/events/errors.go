package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrAccessDenied возвращается, когда событие принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrTimeConflict возвращается, когда интервал события пересекается с существующим
	ErrTimeConflict = errors.New("time conflict with existing event")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец события не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
