package cancel_event

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// buildCancellationTasks собирает outbox задачи об отмене: письмо посетителю
// и, с учётом настроек хоста, уведомления хосту
func buildCancellationTasks(
	event *domain.Event,
	settings *domain.Settings,
	reason string,
) ([]*domain.NotificationTask, error) {
	tasks := make([]*domain.NotificationTask, 0, 3)

	timeRange := fmt.Sprintf("%s - %s",
		event.StartTime.Format("2006-01-02 15:04"),
		event.EndTime.Format("15:04"))

	reasonLine := ""
	if reason != "" {
		reasonLine = fmt.Sprintf("\n\nReason: %s", reason)
	}

	if event.AttendeeEmail != nil {
		task, err := newTask(
			domain.ChannelEmail,
			*event.AttendeeEmail,
			fmt.Sprintf("Booking cancelled: %s", event.Title),
			fmt.Sprintf("Your booking %q for %s has been cancelled.%s", event.Title, timeRange, reasonLine),
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	email := settings.NotificationSettings.Email
	if email.Enabled && email.CancelledBooking && settings.NotifyEmail != "" {
		task, err := newTask(
			domain.ChannelEmail,
			settings.NotifyEmail,
			fmt.Sprintf("Booking cancelled: %s", event.Title),
			fmt.Sprintf("Booking %q for %s was cancelled.%s", event.Title, timeRange, reasonLine),
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if settings.NotificationSettings.SMS.Enabled && settings.NotifyPhone != nil {
		task, err := newTask(
			domain.ChannelSMS,
			*settings.NotifyPhone,
			"",
			fmt.Sprintf("Booking %q for %s cancelled", event.Title, timeRange),
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func newTask(channel domain.NotificationChannel, recipient, subject, body string) (*domain.NotificationTask, error) {
	payload, err := json.Marshal(domain.NotificationPayload{Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal notification payload: %v", ErrInternal, err)
	}
	return &domain.NotificationTask{
		ID:        uuid.NewString(),
		Kind:      domain.NotificationBookingCancelled,
		Channel:   channel,
		Recipient: recipient,
		Payload:   payload,
		Status:    domain.NotificationPending,
	}, nil
}
