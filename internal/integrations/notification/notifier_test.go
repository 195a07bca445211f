package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

type published struct {
	key       string
	messageID string
	msg       *Message
}

type fakePublisher struct {
	failures int
	calls    []published
}

func (p *fakePublisher) PublishJSON(_ context.Context, key, messageID string, v any) error {
	p.calls = append(p.calls, published{key: key, messageID: messageID, msg: v.(*Message)})
	if p.failures > 0 {
		p.failures--
		return errors.New("channel closed")
	}
	return nil
}

type fakeUsers struct {
	user *userservice.User
	err  error
}

func (u *fakeUsers) GetUserWithGracefulDegradation(_ context.Context, _ string) (*userservice.User, error) {
	return u.user, u.err
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		UserID:        "user-1",
		SpaceID:       ptr.Ptr("court-1"),
		StartTime:     time.Date(2025, 6, 11, 7, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC),
		DurationHours: 2,
		TotalAmount:   60,
		PaymentMethod: domain.PaymentCard,
		Status:        domain.StatusConfirmed,
	}
}

func TestNotifier_SendConfirmation(t *testing.T) {
	pub := &fakePublisher{}
	users := &fakeUsers{user: &userservice.User{ID: "user-1", Email: "a@example.com", Name: "Ann"}}
	loc := time.FixedZone("ICT", 7*3600)

	n := NewNotifier(pub, users, loc, logger.NewNop())
	require.NoError(t, n.SendConfirmation(context.Background(), testBooking()))

	require.Len(t, pub.calls, 1)
	call := pub.calls[0]
	assert.Equal(t, KeyConfirmation, call.key)
	assert.NotEmpty(t, call.messageID)
	assert.Equal(t, "a@example.com", call.msg.Email)
	assert.Equal(t, "space", call.msg.ResourceKind)
	assert.Equal(t, "court-1", call.msg.ResourceID)
	assert.Equal(t, "2025-06-11", call.msg.Date)
	assert.Equal(t, "14:00", call.msg.StartTime)
	assert.Equal(t, "16:00", call.msg.EndTime)
}

func TestNotifier_RetriesOnceWithSameMessageID(t *testing.T) {
	pub := &fakePublisher{failures: 1}
	n := NewNotifier(pub, nil, time.UTC, logger.NewNop())

	require.NoError(t, n.SendReminder(context.Background(), testBooking()))

	require.Len(t, pub.calls, 2)
	assert.Equal(t, KeyReminder, pub.calls[1].key)
	assert.Equal(t, pub.calls[0].messageID, pub.calls[1].messageID)
}

func TestNotifier_GivesUpAfterSecondFailure(t *testing.T) {
	pub := &fakePublisher{failures: 5}
	n := NewNotifier(pub, nil, time.UTC, logger.NewNop())

	err := n.SendReminder(context.Background(), testBooking())

	assert.ErrorIs(t, err, ErrPublish)
	assert.Len(t, pub.calls, 2)
}

func TestNotifier_DegradedProfileStillSends(t *testing.T) {
	pub := &fakePublisher{}
	users := &fakeUsers{user: &userservice.User{ID: "user-1"}, err: userservice.ErrServiceDegraded}
	n := NewNotifier(pub, users, time.UTC, logger.NewNop())

	require.NoError(t, n.SendConfirmation(context.Background(), testBooking()))

	require.Len(t, pub.calls, 1)
	assert.Empty(t, pub.calls[0].msg.Email)
	assert.Equal(t, "user-1", pub.calls[0].msg.UserID)
}
