package get_availability

import (
	"time"
)

// Request модель запроса доступных слотов
type Request struct {
	RequestorID *int64    // ID владельца при просмотре из кабинета; nil для публичного запроса
	EventTypeID int64     // ID типа события
	StartDate   time.Time // Начало диапазона (дата без времени)
	EndDate     time.Time // Конец диапазона включительно (дата без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	EventTypeID     int64  // ID типа события
	DurationMinutes int    // Длительность слота в минутах
	StartDate       string // Начало диапазона, "2006-01-02"
	EndDate         string // Конец диапазона, "2006-01-02"
	Slots           []Slot // Хронологический список свободных слотов
}

// Slot свободный интервал для бронирования
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
