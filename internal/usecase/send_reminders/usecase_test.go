package send_reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

type mockRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	from, to time.Time
	markErr  error
}

func (m *mockRepo) ListReminderCandidates(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.from, m.to = from, to

	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.IsConfirmed() && !b.ReminderSent && !b.StartTime.Before(from) && !b.StartTime.After(to) {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *mockRepo) MarkReminderSent(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return false, m.markErr
	}
	for _, b := range m.bookings {
		if b.ID == id && !b.ReminderSent && b.IsConfirmed() {
			b.ReminderSent = true
			return true, nil
		}
	}
	return false, nil
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []int64
	err  error
}

func (m *mockNotifier) SendReminder(_ context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, booking.ID)
	return m.err
}

type mockTimeProvider struct {
	now time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.now
}

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func confirmedAt(id int64, startIn time.Duration) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		StartTime: now.Add(startIn),
		EndTime:   now.Add(startIn + time.Hour),
		Status:    domain.StatusConfirmed,
	}
}

func newUseCase(repo *mockRepo, notifier *mockNotifier) *UseCase {
	uc := NewUseCase(repo, notifier, logger.NewNop())
	uc.timeProvider = &mockTimeProvider{now: now}
	return uc
}

func TestExecute_Window(t *testing.T) {
	repo := &mockRepo{bookings: []*domain.Booking{
		confirmedAt(1, 23*time.Hour),
		confirmedAt(2, 23*time.Hour+30*time.Minute),
		confirmedAt(3, 24*time.Hour),
		confirmedAt(4, 24*time.Hour+time.Minute),
		confirmedAt(5, 22*time.Hour),
	}}
	notifier := &mockNotifier{}

	result, err := newUseCase(repo, notifier).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now.Add(23*time.Hour), repo.from)
	assert.Equal(t, now.Add(24*time.Hour), repo.to)
	assert.ElementsMatch(t, []int64{1, 2, 3}, notifier.sent)
	assert.Equal(t, 3, result.Sent)
}

func TestExecute_SecondPassSendsNothing(t *testing.T) {
	repo := &mockRepo{bookings: []*domain.Booking{confirmedAt(1, 23*time.Hour+10*time.Minute)}}
	notifier := &mockNotifier{}
	uc := newUseCase(repo, notifier)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, notifier.sent)
	assert.Zero(t, result.Candidates)
}

func TestExecute_ConcurrentRunsSendOnce(t *testing.T) {
	repo := &mockRepo{}
	for i := int64(1); i <= 20; i++ {
		repo.bookings = append(repo.bookings, confirmedAt(i, 23*time.Hour+time.Duration(i)*time.Minute))
	}
	notifier := &mockNotifier{}
	uc := newUseCase(repo, notifier)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Execute(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, notifier.sent, 20)
}

func TestExecute_SendFailureNotRetried(t *testing.T) {
	repo := &mockRepo{bookings: []*domain.Booking{confirmedAt(1, 23*time.Hour+10*time.Minute)}}
	notifier := &mockNotifier{err: errors.New("broker down")}

	result, err := newUseCase(repo, notifier).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.True(t, repo.bookings[0].ReminderSent)
}

func TestExecute_MarkError(t *testing.T) {
	repo := &mockRepo{bookings: []*domain.Booking{confirmedAt(1, 23*time.Hour+10*time.Minute)}, markErr: errors.New("db")}
	notifier := &mockNotifier{}

	result, err := newUseCase(repo, notifier).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, notifier.sent)
}
