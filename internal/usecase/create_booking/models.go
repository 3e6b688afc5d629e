package create_booking

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/calendarlinks"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	EventTypeID int64            // ID типа события
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	Name        string           // Имя посетителя
	Email       string           // Email посетителя
	Phone       *string          // Телефон посетителя (опционально)
	Location    *string          // Выбранный способ встречи (опционально)
	Notes       *string          // Комментарий посетителя (опционально)
	Answers     json.RawMessage  // Ответы на вопросы типа события (опционально)
}

// Response модель ответа с созданным событием
type Response struct {
	ID            int64              // ID созданного события
	EventTypeID   int64              // ID типа события
	Title         string             // Название (по имени типа события)
	StartTime     time.Time          // Начало
	EndTime       time.Time          // Конец
	AttendeeName  string             // Имя посетителя
	AttendeeEmail string             // Email посетителя
	Location      *string            // Способ встречи
	IsConfirmed   bool               // Подтверждено
	CalendarLinks calendarlinks.Links // Ссылки "добавить в календарь"
	CreatedAt     time.Time          // Время создания
}
