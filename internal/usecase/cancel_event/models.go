package cancel_event

// Request модель запроса на отмену события
type Request struct {
	EventID int64  // ID события
	UserID  int64  // Владелец календаря
	Reason  string // Причина отмены (попадает в уведомления)
}

// Response модель ответа об отмене
type Response struct {
	EventID       int64 // ID удалённого события
	Notifications int   // Сколько уведомлений поставлено в очередь
}
