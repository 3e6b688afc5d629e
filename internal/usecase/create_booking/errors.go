package create_booking

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден или не принимает брони
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrSlotTaken возвращается, когда интервал уже занят другим событием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrSlotUnavailable возвращается, когда запрошенное время вне рабочих часов
	// хоста, не попадает в сетку слотов или уже в прошлом
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
