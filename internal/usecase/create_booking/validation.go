package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	return nil
}

// validateEmail проверяет минимально разумный формат email
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

// validateSlotFits проверяет, что интервал попадает в рабочие часы хоста
// и совпадает с сеткой слотов (слоты идут вплотную от начала дня)
func validateSlotFits(
	schedule domain.WeekSchedule,
	start time.Time,
	end time.Time,
	durationMinutes int,
) error {
	day := schedule.ForWeekday(start.Weekday())
	if !day.Enabled {
		return fmt.Errorf("%w: host does not work on this day", ErrSlotUnavailable)
	}

	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayStart, err := day.Start.On(date)
	if err != nil {
		return fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}
	dayEnd, err := day.End.On(date)
	if err != nil {
		return fmt.Errorf("%w: malformed working hours: %v", ErrInternal, err)
	}

	if start.Before(dayStart) || end.After(dayEnd) {
		return fmt.Errorf("%w: outside working hours", ErrSlotUnavailable)
	}

	// Слот обязан лежать на сетке: смещение от начала дня кратно длительности
	offset := int(start.Sub(dayStart) / time.Minute)
	if durationMinutes > 0 && offset%durationMinutes != 0 {
		return fmt.Errorf("%w: time does not match the slot grid", ErrSlotUnavailable)
	}

	return nil
}

// hasOverlap проверяет строгое пересечение интервала с событиями
// Совпадающие границы пересечением не считаются
func hasOverlap(events []*domain.Event, start, end time.Time) bool {
	for _, event := range events {
		if event.OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}
