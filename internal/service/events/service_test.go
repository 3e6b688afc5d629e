package events

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int64]*domain.Event
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *e
	created.ID = f.nextID
	f.nextID++
	f.events[created.ID] = &created
	return &created, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventRepo) GetOverlapping(_ context.Context, userID int64, start, end time.Time, excludeID *int64) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if e.OverlapsInterval(start, end) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) List(_ context.Context, filter domain.EventsFilter, _ time.Time) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.events {
		if e.UserID == filter.UserID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Count(_ context.Context, filter domain.EventsFilter, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.UserID == filter.UserID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) Update(_ context.Context, id int64, upd domain.EventUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return eventRepo.ErrEventNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.StartTime != nil {
		e.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		e.EndTime = *upd.EndTime
	}
	if upd.Description != nil {
		e.Description = upd.Description
	}
	if upd.Location != nil {
		e.Location = upd.Location
	}
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return eventRepo.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

// fakeTxManager сериализует транзакции мьютексом — имитация SERIALIZABLE
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// commitFailTxManager исполняет fn и падает на коммите заданной ошибкой
type commitFailTxManager struct {
	commitErr error
}

func (m *commitFailTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("txmanager: commit transaction: %w", m.commitErr)
}

func (m *commitFailTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func (m *commitFailTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeEventRepo) {
	repo := newFakeEventRepo()
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, &fakeTxManager{}, fixedTime{now}, nopLogger{})
	return svc, repo
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestCreate_Success(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID:    1,
		Title:     "Focus block",
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, "Focus block", resp.Title)
	assert.True(t, resp.IsConfirmed)
}

func TestCreate_ConflictRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "First", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	// Пересечение в одну минуту — конфликт
	_, err = svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Second", StartTime: at(9, 59), EndTime: at(11, 0),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreate_SerializationAbortMapsToConflict(t *testing.T) {
	// Проигравшая транзакция может упасть уже на коммите (SQLSTATE 40001):
	// для клиента это тот же конфликт времени
	repo := newFakeEventRepo()
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	tx := &commitFailTxManager{commitErr: &pq.Error{Code: "40001"}}
	svc := NewService(repo, tx, fixedTime{now}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Racy", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreate_BackToBackAllowed(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "First", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	// Совпадающие границы пересечением не считаются
	_, err = svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Second", StartTime: at(10, 0), EndTime: at(11, 0),
	})
	assert.NoError(t, err)
}

func TestCreate_OtherUserUnaffected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "First", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 2, Title: "Other calendar", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	assert.NoError(t, err)
}

func TestCreate_InvalidTimeRange(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Backwards", StartTime: at(10, 0), EndTime: at(9, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUpdate_MoveIgnoresSelf(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Meeting", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	// Сдвиг внутри собственного интервала не конфликтует сам с собой
	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateEventRequest{
		UserID:    1,
		StartTime: ptr.Ptr(at(9, 30)),
		EndTime:   ptr.Ptr(at(10, 30)),
	})
	require.NoError(t, err)
	assert.Equal(t, at(9, 30), updated.StartTime)
}

func TestUpdate_MoveIntoConflict(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Blocker", StartTime: at(11, 0), EndTime: at(12, 0),
	})
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Meeting", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateEventRequest{
		UserID:    1,
		StartTime: ptr.Ptr(at(11, 30)),
		EndTime:   ptr.Ptr(at(12, 30)),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventRequest{
		UserID: 1, Title: "Meeting", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateEventRequest{
		UserID: 2,
		Title:  ptr.Ptr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_InvalidStatusRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), &models.ListEventsRequest{
		UserID: 1,
		Status: ptr.Ptr("yesterday"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_Pagination(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &models.CreateEventRequest{
			UserID:    1,
			Title:     "Meeting",
			StartTime: at(9+i, 0),
			EndTime:   at(9+i, 30),
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), &models.ListEventsRequest{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, domain.DefaultEventsPerPage, resp.PerPage)
	assert.Equal(t, 1, resp.TotalPages)
}
