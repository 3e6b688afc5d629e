package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeEventTypeRepo struct {
	types map[int64]*domain.EventType
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, id int64) (*domain.EventType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	return t, nil
}

type fakeEventRepo struct {
	events []*domain.Event
}

func (f *fakeEventRepo) GetOverlapping(_ context.Context, userID int64, start, end time.Time, _ *int64) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.events {
		if e.UserID == userID && e.OverlapsInterval(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSettings struct {
	schedule domain.WeekSchedule
}

func (f *fakeSettings) GetDomain(_ context.Context, userID int64) (*domain.Settings, error) {
	return &domain.Settings{UserID: userID, WorkingHours: f.schedule}, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(types map[int64]*domain.EventType, events []*domain.Event, schedule domain.WeekSchedule) *UseCase {
	uc := NewUseCase(
		&fakeEventTypeRepo{types: types},
		&fakeEventRepo{events: events},
		&fakeSettings{schedule: schedule},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{farPast}
	return uc
}

func activeEventType() *domain.EventType {
	return &domain.EventType{
		ID:              10,
		UserID:          1,
		Name:            "Intro Call",
		Slug:            "intro-call",
		DurationMinutes: 30,
		IsActive:        true,
	}
}

func TestExecute_PublicListsSlots(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	uc := newTestUseCase(map[int64]*domain.EventType{10: activeEventType()}, nil, schedule)

	resp, err := uc.Execute(context.Background(), &Request{
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.EventTypeID)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	events := []*domain.Event{
		{UserID: 1, StartTime: mondayAt(9, 0), EndTime: mondayAt(9, 30)},
	}
	uc := newTestUseCase(map[int64]*domain.EventType{10: activeEventType()}, events, schedule)

	resp, err := uc.Execute(context.Background(), &Request{
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, mondayAt(9, 30), resp.Slots[0].StartTime)
}

func TestExecute_InactiveHiddenFromPublic(t *testing.T) {
	et := activeEventType()
	et.IsActive = false
	uc := newTestUseCase(map[int64]*domain.EventType{10: et}, nil, domain.DefaultWeekSchedule())

	_, err := uc.Execute(context.Background(), &Request{
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
	})
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestExecute_InactiveVisibleToOwner(t *testing.T) {
	et := activeEventType()
	et.IsActive = false
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	uc := newTestUseCase(map[int64]*domain.EventType{10: et}, nil, schedule)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestorID: ptr.Ptr(int64(1)),
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_ForeignOwnerDenied(t *testing.T) {
	uc := newTestUseCase(map[int64]*domain.EventType{10: activeEventType()}, nil, domain.DefaultWeekSchedule())

	_, err := uc.Execute(context.Background(), &Request{
		RequestorID: ptr.Ptr(int64(2)),
		EventTypeID: 10,
		StartDate:   monday,
		EndDate:     monday,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_UnknownEventType(t *testing.T) {
	uc := newTestUseCase(map[int64]*domain.EventType{}, nil, domain.DefaultWeekSchedule())

	_, err := uc.Execute(context.Background(), &Request{
		EventTypeID: 99,
		StartDate:   monday,
		EndDate:     monday,
	})
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(map[int64]*domain.EventType{}, nil, domain.DefaultWeekSchedule())

	_, err := uc.Execute(context.Background(), &Request{EventTypeID: 0, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{EventTypeID: 1, EndDate: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
