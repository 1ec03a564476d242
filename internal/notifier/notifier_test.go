package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliver(t *testing.T) {
	mock := NewMock()
	ctx := context.Background()

	require.NoError(t, Deliver(ctx, mock, Event{
		Type:                 EventRegistrationReceived,
		RegistrationReceived: &RegistrationReceived{TeamName: "Tiburones", Amount: 80},
	}))
	require.NoError(t, Deliver(ctx, mock, Event{
		Type:              EventApprovalConfirmed,
		ApprovalConfirmed: &ApprovalConfirmed{TeamName: "Tiburones"},
	}))
	require.NoError(t, Deliver(ctx, mock, Event{Type: EventWelcome, Welcome: &Welcome{FullName: "Ana"}}))

	assert.Equal(t, 80, mock.RegistrationReceivedCalls()[0].Amount)
	assert.Len(t, mock.ApprovalConfirmedCalls(), 1)
	assert.Equal(t, "Ana", mock.WelcomeCalls()[0].FullName)
}

func TestDeliver_UnknownOrMismatchedEvent(t *testing.T) {
	mock := NewMock()

	err := Deliver(context.Background(), mock, Event{Type: "score_update"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	err = Deliver(context.Background(), mock, Event{Type: EventWelcome, ApprovalConfirmed: &ApprovalConfirmed{}})
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Empty(t, mock.WelcomeCalls())
}

func TestFanout(t *testing.T) {
	ok := NewMock()
	failing := NewMock()
	boom := errors.New("smtp down")
	failing.SendWelcomeFunc = func(n Welcome) error { return boom }

	err := Fanout{failing, ok}.SendWelcome(context.Background(), Welcome{FullName: "Ana"}, false)

	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.WelcomeCalls(), 1, "a failing target does not stop the others")
}
