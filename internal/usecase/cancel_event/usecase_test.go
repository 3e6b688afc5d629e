package cancel_event

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeEventRepo struct {
	events    map[int64]*domain.Event
	deleteErr error
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.events[id]; !ok {
		return eventRepo.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeOutbox struct {
	tasks []*domain.NotificationTask
}

func (f *fakeOutbox) Enqueue(_ context.Context, task *domain.NotificationTask) error {
	f.tasks = append(f.tasks, task)
	return nil
}

type fakeSettings struct {
	settings *domain.Settings
}

func (f *fakeSettings) GetDomain(_ context.Context, _ int64) (*domain.Settings, error) {
	return f.settings, nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookedEvent() *domain.Event {
	return &domain.Event{
		ID:            5,
		UserID:        1,
		Title:         "Intro Call",
		StartTime:     time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		AttendeeName:  ptr.Ptr("Alice"),
		AttendeeEmail: ptr.Ptr("alice@example.com"),
		IsConfirmed:   true,
	}
}

func newTestEnv(event *domain.Event, settings *domain.Settings) (*UseCase, *fakeEventRepo, *fakeOutbox) {
	repo := &fakeEventRepo{events: map[int64]*domain.Event{}}
	if event != nil {
		repo.events[event.ID] = event
	}
	outbox := &fakeOutbox{}
	uc := NewUseCase(repo, outbox, &fakeSettings{settings: settings}, passTxManager{}, nopLogger{})
	return uc, repo, outbox
}

func defaultSettings() *domain.Settings {
	return &domain.Settings{
		UserID:               1,
		WorkingHours:         domain.DefaultWeekSchedule(),
		NotificationSettings: domain.DefaultNotificationSettings(),
		NotifyEmail:          "host@example.com",
	}
}

func TestExecute_DeletesEventAndNotifiesAttendee(t *testing.T) {
	uc, repo, outbox := newTestEnv(bookedEvent(), defaultSettings())

	resp, err := uc.Execute(context.Background(), &Request{EventID: 5, UserID: 1, Reason: "host unavailable"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.EventID)
	assert.Empty(t, repo.events)

	require.Len(t, outbox.tasks, 1)
	task := outbox.tasks[0]
	assert.Equal(t, domain.NotificationBookingCancelled, task.Kind)
	assert.Equal(t, "alice@example.com", task.Recipient)
	assert.Contains(t, string(task.Payload), "host unavailable")
}

func TestExecute_HostNotificationsHonorToggles(t *testing.T) {
	settings := defaultSettings()
	settings.NotificationSettings.Email.Enabled = true
	settings.NotificationSettings.SMS.Enabled = true
	settings.NotifyPhone = ptr.Ptr("+15550100")

	uc, _, outbox := newTestEnv(bookedEvent(), settings)

	resp, err := uc.Execute(context.Background(), &Request{EventID: 5, UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Notifications)
	assert.Len(t, outbox.tasks, 3)
}

func TestExecute_AdHocEventNoAttendee(t *testing.T) {
	event := bookedEvent()
	event.AttendeeEmail = nil

	uc, repo, outbox := newTestEnv(event, defaultSettings())

	resp, err := uc.Execute(context.Background(), &Request{EventID: 5, UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Notifications)
	assert.Empty(t, outbox.tasks)
	assert.Empty(t, repo.events)
}

func TestExecute_OwnerOnly(t *testing.T) {
	uc, repo, _ := newTestEnv(bookedEvent(), defaultSettings())

	_, err := uc.Execute(context.Background(), &Request{EventID: 5, UserID: 2})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Len(t, repo.events, 1)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newTestEnv(nil, defaultSettings())

	_, err := uc.Execute(context.Background(), &Request{EventID: 99, UserID: 1})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	uc, _, _ := newTestEnv(bookedEvent(), defaultSettings())

	_, err := uc.Execute(context.Background(), &Request{
		EventID: 5,
		UserID:  1,
		Reason:  strings.Repeat("a", domain.MaxReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DeleteFailureKeepsEvent(t *testing.T) {
	uc, repo, _ := newTestEnv(bookedEvent(), defaultSettings())
	repo.deleteErr = errors.New("connection reset")

	_, err := uc.Execute(context.Background(), &Request{EventID: 5, UserID: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Len(t, repo.events, 1)
}
