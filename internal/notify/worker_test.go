package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type fakeOutbox struct {
	pending []*domain.NotificationTask
	sent    []string
	failed  map[string]int
}

func newFakeOutbox(tasks ...*domain.NotificationTask) *fakeOutbox {
	return &fakeOutbox{pending: tasks, failed: make(map[string]int)}
}

func (f *fakeOutbox) FetchPending(_ context.Context, limit int) ([]*domain.NotificationTask, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkAttemptFailed(_ context.Context, id string, attempts int, _ int, _ string) error {
	f.failed[id] = attempts
	return nil
}

type fakeMailer struct {
	sent  []string
	fails int // сколько первых вызовов вернут ошибку
	err   error
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	if f.fails > 0 {
		f.fails--
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMS struct {
	sent []string
}

func (f *fakeSMS) Send(_ context.Context, to, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() Config {
	return Config{
		Interval:       time.Second,
		BatchSize:      10,
		MaxAttempts:    3,
		RetryBaseDelay: time.Millisecond,
	}
}

func emailTask(recipient string) *domain.NotificationTask {
	payload, _ := json.Marshal(domain.NotificationPayload{Subject: "Booking confirmed", Body: "see you"})
	return &domain.NotificationTask{
		ID:        uuid.NewString(),
		Kind:      domain.NotificationBookingConfirmation,
		Channel:   domain.ChannelEmail,
		Recipient: recipient,
		Payload:   payload,
		Status:    domain.NotificationPending,
	}
}

func smsTask(recipient string) *domain.NotificationTask {
	payload, _ := json.Marshal(domain.NotificationPayload{Body: "booking confirmed"})
	return &domain.NotificationTask{
		ID:        uuid.NewString(),
		Kind:      domain.NotificationBookingConfirmation,
		Channel:   domain.ChannelSMS,
		Recipient: recipient,
		Payload:   payload,
		Status:    domain.NotificationPending,
	}
}

func TestProcessBatch_DeliversByChannel(t *testing.T) {
	email := emailTask("alice@example.com")
	sms := smsTask("+15550100")
	outbox := newFakeOutbox(email, sms)
	mailerClient := &fakeMailer{}
	smsClient := &fakeSMS{}

	w := NewWorker(outbox, mailerClient, smsClient, passTxManager{}, testConfig(), nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Equal(t, []string{"alice@example.com"}, mailerClient.sent)
	assert.Equal(t, []string{"+15550100"}, smsClient.sent)
	assert.ElementsMatch(t, []string{email.ID, sms.ID}, outbox.sent)
	assert.Empty(t, outbox.failed)
}

func TestProcessBatch_TransientErrorRetriedWithinAttempt(t *testing.T) {
	task := emailTask("alice@example.com")
	outbox := newFakeOutbox(task)
	// Первые два вызова падают, третий проходит — всё внутри одной попытки
	mailerClient := &fakeMailer{fails: 2, err: errors.New("connection refused")}

	w := NewWorker(outbox, mailerClient, &fakeSMS{}, passTxManager{}, testConfig(), nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Equal(t, []string{task.ID}, outbox.sent)
	assert.Empty(t, outbox.failed)
}

func TestProcessBatch_ExhaustedRetriesMarkFailed(t *testing.T) {
	task := emailTask("alice@example.com")
	outbox := newFakeOutbox(task)
	mailerClient := &fakeMailer{fails: 10, err: errors.New("connection refused")}

	w := NewWorker(outbox, mailerClient, &fakeSMS{}, passTxManager{}, testConfig(), nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Empty(t, outbox.sent)
	assert.Equal(t, 1, outbox.failed[task.ID])
}

func TestProcessBatch_AttemptsAccumulate(t *testing.T) {
	task := emailTask("alice@example.com")
	task.Attempts = 2
	outbox := newFakeOutbox(task)
	mailerClient := &fakeMailer{fails: 10, err: errors.New("connection refused")}

	w := NewWorker(outbox, mailerClient, &fakeSMS{}, passTxManager{}, testConfig(), nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Equal(t, 3, outbox.failed[task.ID])
}

func TestProcessBatch_BadPayloadMarkedFailed(t *testing.T) {
	task := emailTask("alice@example.com")
	task.Payload = []byte("{not json")
	outbox := newFakeOutbox(task)

	w := NewWorker(outbox, &fakeMailer{}, &fakeSMS{}, passTxManager{}, testConfig(), nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Empty(t, outbox.sent)
	assert.Equal(t, 1, outbox.failed[task.ID])
}

func TestProcessBatch_RespectsBatchSize(t *testing.T) {
	outbox := newFakeOutbox(
		emailTask("a@example.com"),
		emailTask("b@example.com"),
		emailTask("c@example.com"),
	)
	mailerClient := &fakeMailer{}

	cfg := testConfig()
	cfg.BatchSize = 2

	w := NewWorker(outbox, mailerClient, &fakeSMS{}, passTxManager{}, cfg, nopLogger{})
	w.ProcessBatch(context.Background())

	assert.Len(t, mailerClient.sent, 2)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	outbox := newFakeOutbox()
	w := NewWorker(outbox, &fakeMailer{}, &fakeSMS{}, passTxManager{}, Config{
		Interval:       time.Millisecond,
		BatchSize:      1,
		MaxAttempts:    1,
		RetryBaseDelay: time.Millisecond,
	}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
	require.NotNil(t, outbox)
}
