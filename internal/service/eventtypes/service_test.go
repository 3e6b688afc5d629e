package eventtypes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeEventTypeRepo struct {
	byID   map[int64]*domain.EventType
	bySlug map[string]*domain.EventType
	nextID int64
}

func newFakeEventTypeRepo() *fakeEventTypeRepo {
	return &fakeEventTypeRepo{
		byID:   make(map[int64]*domain.EventType),
		bySlug: make(map[string]*domain.EventType),
		nextID: 1,
	}
}

func (f *fakeEventTypeRepo) Create(_ context.Context, t *domain.EventType) (*domain.EventType, error) {
	if _, ok := f.bySlug[t.Slug]; ok {
		return nil, eventTypeRepo.ErrSlugTaken
	}
	created := *t
	created.ID = f.nextID
	f.nextID++
	f.byID[created.ID] = &created
	f.bySlug[created.Slug] = &created
	return &created, nil
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, id int64) (*domain.EventType, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeEventTypeRepo) GetBySlug(_ context.Context, slug string) (*domain.EventType, error) {
	t, ok := f.bySlug[slug]
	if !ok {
		return nil, eventTypeRepo.ErrEventTypeNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeEventTypeRepo) ListByUserID(_ context.Context, userID int64) ([]*domain.EventType, error) {
	var out []*domain.EventType
	for _, t := range f.byID {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEventTypeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	_, ok := f.bySlug[slug]
	return ok, nil
}

func (f *fakeEventTypeRepo) Update(_ context.Context, id int64, upd domain.EventTypeUpdate, newSlug *string) error {
	t, ok := f.byID[id]
	if !ok {
		return eventTypeRepo.ErrEventTypeNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.DurationMinutes != nil {
		t.DurationMinutes = *upd.DurationMinutes
	}
	if upd.IsActive != nil {
		t.IsActive = *upd.IsActive
	}
	if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.Color != nil {
		t.Color = *upd.Color
	}
	if newSlug != nil {
		delete(f.bySlug, t.Slug)
		t.Slug = *newSlug
		f.bySlug[t.Slug] = t
	}
	return nil
}

func (f *fakeEventTypeRepo) Delete(_ context.Context, id int64) error {
	t, ok := f.byID[id]
	if !ok {
		return eventTypeRepo.ErrEventTypeNotFound
	}
	delete(f.bySlug, t.Slug)
	delete(f.byID, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeEventTypeRepo) {
	repo := newFakeEventTypeRepo()
	return NewService(repo, nopLogger{}), repo
}

func TestCreate_GeneratesSlugFromName(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID:          1,
		Name:            "Intro Call",
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "intro-call", resp.Slug)
	assert.True(t, resp.IsActive)
	assert.Equal(t, domain.DefaultEventTypeColor, resp.Color)
}

func TestCreate_SlugCollisionGetsSuffix(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Intro Call", DurationMinutes: 30,
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 2, Name: "Intro Call", DurationMinutes: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, "intro-call", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^intro-call-[0-9a-f]{4}$`, second.Slug)
}

func TestCreate_RejectsInvalidDuration(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Marathon", DurationMinutes: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Marathon", DurationMinutes: 481,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RenameRegeneratesSlug(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Intro Call", DurationMinutes: 30,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateEventTypeRequest{
		UserID: 1,
		Name:   ptr.Ptr("Discovery Call"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Discovery Call", updated.Name)
	assert.Equal(t, "discovery-call", updated.Slug)
}

func TestUpdate_SameNameKeepsSlug(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Intro Call", DurationMinutes: 30,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateEventTypeRequest{
		UserID:          1,
		Name:            ptr.Ptr("Intro Call"),
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, "intro-call", updated.Slug)
	assert.Equal(t, 45, updated.DurationMinutes)
}

func TestGetByID_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Intro Call", DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), created.ID+100, 1)
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestGetPublic_InactiveHidden(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), &models.CreateEventTypeRequest{
		UserID: 1, Name: "Intro Call", DurationMinutes: 30,
	})
	require.NoError(t, err)

	public, err := svc.GetPublic(context.Background(), created.Slug, false, 0)
	require.NoError(t, err)
	assert.Equal(t, created.ID, public.ID)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateEventTypeRequest{
		UserID:   1,
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)

	_, err = svc.GetPublic(context.Background(), created.Slug, false, 0)
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}
