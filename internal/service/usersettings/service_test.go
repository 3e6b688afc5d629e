package usersettings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/usersettings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeSettingsRepo struct {
	byUser map[int64]*domain.Settings
	nextID int64
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byUser: make(map[int64]*domain.Settings), nextID: 1}
}

func (f *fakeSettingsRepo) GetByUserID(_ context.Context, userID int64) (*domain.Settings, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.Settings) (*domain.Settings, error) {
	stored := *s
	if existing, ok := f.byUser[s.UserID]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = f.nextID
		f.nextID++
	}
	f.byUser[s.UserID] = &stored
	copied := stored
	return &copied, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGet_BootstrapsDefaults(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, resp.WorkingHours.Monday.Enabled)
	assert.Equal(t, "09:00", resp.WorkingHours.Monday.Start.String())
	assert.Equal(t, "17:00", resp.WorkingHours.Friday.End.String())
	assert.False(t, resp.WorkingHours.Saturday.Enabled)
	assert.False(t, resp.WorkingHours.Sunday.Enabled)

	// Уведомления по умолчанию выключены
	assert.False(t, resp.NotificationSettings.Email.Enabled)
	assert.False(t, resp.NotificationSettings.SMS.Enabled)
}

func TestGet_ReturnsExisting(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, nopLogger{})

	first, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	second, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Len(t, repo.byUser, 1)
}

func TestUpdate_PartialSections(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	schedule := domain.DefaultWeekSchedule()
	schedule.Saturday = domain.DaySchedule{Enabled: true, Start: "10:00", End: "14:00"}

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:       1,
		WorkingHours: &schedule,
		DisplayName:  ptr.Ptr("Alex"),
	})
	require.NoError(t, err)

	assert.True(t, resp.WorkingHours.Saturday.Enabled)
	assert.Equal(t, "Alex", resp.DisplayName)

	// Секция уведомлений не передавалась и осталась дефолтной
	assert.False(t, resp.NotificationSettings.Email.Enabled)
}

func TestUpdate_RejectsInvalidSchedule(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	schedule := domain.DefaultWeekSchedule()
	schedule.Monday = domain.DaySchedule{Enabled: true, Start: "17:00", End: "09:00"}

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:       1,
		WorkingHours: &schedule,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestUpdate_RejectsMalformedTime(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), nopLogger{})

	schedule := domain.DefaultWeekSchedule()
	schedule.Monday = domain.DaySchedule{Enabled: true, Start: "9am", End: "17:00"}

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:       1,
		WorkingHours: &schedule,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
