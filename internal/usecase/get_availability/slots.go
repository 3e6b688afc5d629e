package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// computeSlots строит список свободных слотов на диапазон дат
// Слоты идут вплотную друг к другу от начала рабочего дня; слот свободен,
// если он не начался в прошлом и ни одно событие не пересекается с ним
// Обратный диапазон и неположительная длительность дают пустой список
func computeSlots(
	schedule domain.WeekSchedule,
	events []*domain.Event,
	durationMinutes int,
	startDate time.Time,
	endDate time.Time,
	now time.Time,
) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0)

	if durationMinutes <= 0 {
		return slots, nil
	}

	duration := time.Duration(durationMinutes) * time.Minute
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := schedule.ForWeekday(date.Weekday())
		if !day.Enabled {
			continue
		}

		dayStart, err := day.Start.On(date)
		if err != nil {
			return nil, err
		}
		dayEnd, err := day.End.On(date)
		if err != nil {
			return nil, err
		}

		// Слоты вплотную: следующий начинается там, где кончился предыдущий
		for cursor := dayStart; !cursor.Add(duration).After(dayEnd); cursor = cursor.Add(duration) {
			candidate := domain.TimeSlot{
				Start: cursor,
				End:   cursor.Add(duration),
			}

			// Прошедшие слоты отбрасываем намеренно: клиент никогда не
			// видит время, которое уже нельзя забронировать
			if candidate.Start.Before(now) {
				continue
			}

			if hasConflict(candidate, events) {
				continue
			}

			slots = append(slots, candidate)
		}
	}

	return slots, nil
}

// hasConflict проверяет строгое пересечение слота с существующими событиями
// Совпадающие границы пересечением не считаются: событие до 10:00
// не блокирует слот с 10:00
func hasConflict(slot domain.TimeSlot, events []*domain.Event) bool {
	for _, event := range events {
		if event.OverlapsInterval(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
