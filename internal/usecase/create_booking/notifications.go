package create_booking

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/calendarlinks"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// buildNotificationTasks собирает outbox задачи для нового бронирования:
// подтверждение посетителю и, с учётом настроек хоста, уведомления хосту
func buildNotificationTasks(
	event *domain.Event,
	settings *domain.Settings,
	links calendarlinks.Links,
) ([]*domain.NotificationTask, error) {
	tasks := make([]*domain.NotificationTask, 0, 3)

	timeRange := fmt.Sprintf("%s - %s",
		event.StartTime.Format("2006-01-02 15:04"),
		event.EndTime.Format("15:04"))

	// Подтверждение посетителю с календарными ссылками
	if event.AttendeeEmail != nil {
		body := fmt.Sprintf(
			"Your booking %q is confirmed for %s (%d min).\n\nAdd to calendar:\nGoogle: %s\nOutlook: %s\n",
			event.Title, timeRange, event.DurationMinutes(), links.Google, links.Outlook)

		task, err := newEmailTask(
			domain.NotificationBookingConfirmation,
			*event.AttendeeEmail,
			fmt.Sprintf("Booking confirmed: %s", event.Title),
			body,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	// Уведомление хосту по email
	email := settings.NotificationSettings.Email
	if email.Enabled && email.NewBooking && settings.NotifyEmail != "" {
		attendee := ""
		if event.AttendeeName != nil {
			attendee = *event.AttendeeName
		}
		body := fmt.Sprintf("New booking %q from %s for %s.", event.Title, attendee, timeRange)

		task, err := newEmailTask(
			domain.NotificationBookingConfirmation,
			settings.NotifyEmail,
			fmt.Sprintf("New booking: %s", event.Title),
			body,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	// Уведомление хосту по SMS
	if settings.NotificationSettings.SMS.Enabled && settings.NotifyPhone != nil {
		task, err := newSMSTask(
			domain.NotificationBookingConfirmation,
			*settings.NotifyPhone,
			fmt.Sprintf("New booking %q for %s", event.Title, timeRange),
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func newEmailTask(kind domain.NotificationKind, recipient, subject, body string) (*domain.NotificationTask, error) {
	payload, err := json.Marshal(domain.NotificationPayload{Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal notification payload: %v", ErrInternal, err)
	}
	return &domain.NotificationTask{
		ID:        uuid.NewString(),
		Kind:      kind,
		Channel:   domain.ChannelEmail,
		Recipient: recipient,
		Payload:   payload,
		Status:    domain.NotificationPending,
	}, nil
}

func newSMSTask(kind domain.NotificationKind, recipient, text string) (*domain.NotificationTask, error) {
	payload, err := json.Marshal(domain.NotificationPayload{Body: text})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal notification payload: %v", ErrInternal, err)
	}
	return &domain.NotificationTask{
		ID:        uuid.NewString(),
		Kind:      kind,
		Channel:   domain.ChannelSMS,
		Recipient: recipient,
		Payload:   payload,
		Status:    domain.NotificationPending,
	}, nil
}
