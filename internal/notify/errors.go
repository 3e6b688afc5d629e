package notify

import "errors"

var (
	// ErrUnknownChannel возвращается для задачи с неизвестным каналом доставки
	ErrUnknownChannel = errors.New("notify: unknown delivery channel")

	// ErrBadPayload возвращается, когда payload задачи не разбирается
	ErrBadPayload = errors.New("notify: malformed task payload")
)
