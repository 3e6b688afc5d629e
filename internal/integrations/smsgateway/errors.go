package smsgateway

import "errors"

var (
	// ErrInternal внутренняя ошибка клиента (сеть, построение запроса)
	ErrInternal = errors.New("smsgateway.client: internal error")

	// ErrInvalidResponse получен некорректный или неожиданный ответ от шлюза
	ErrInvalidResponse = errors.New("smsgateway.client: invalid response")

	// ErrRejected шлюз отклонил сообщение (невалидный номер)
	ErrRejected = errors.New("smsgateway.client: message rejected")
)
