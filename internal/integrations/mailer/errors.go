package mailer

import "errors"

var (
	// ErrInternal внутренняя ошибка клиента (сеть, построение запроса)
	ErrInternal = errors.New("mailer.client: internal error")

	// ErrInvalidResponse получен некорректный или неожиданный ответ от шлюза
	ErrInvalidResponse = errors.New("mailer.client: invalid response")

	// ErrRejected шлюз отклонил письмо (невалидный адрес, заблокированный получатель)
	ErrRejected = errors.New("mailer.client: message rejected")
)
