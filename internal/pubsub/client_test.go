package pubsub

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type testPayload struct {
	Kind  string `msgpack:"kind"`
	Count int    `msgpack:"count"`
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(testPayload{Kind: "welcome", Count: 3})
	require.NoError(t, err)

	var got testPayload
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, testPayload{Kind: "welcome", Count: 3}, got)

	assert.Error(t, Decode([]byte{0xc1}, &got), "0xc1 is never valid MessagePack")
}

func TestMock_RecordsAndDecodes(t *testing.T) {
	m := NewMock("project")
	require.NoError(t, m.SendMessage(context.Background(), TopicNotifications, "payload"))

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, string(TopicNotifications), calls[0].Topic)

	data, err := Encode(testPayload{Kind: "k"})
	require.NoError(t, err)
	var got testPayload
	require.NoError(t, m.ProcessMessage(data, &got))
	assert.Equal(t, "k", got.Kind)
}

func TestPublishUnconfirmed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context deadline", fmt.Errorf("publish: %w", context.DeadlineExceeded), true},
		{"context canceled", context.Canceled, true},
		{"grpc deadline", status.Error(codes.DeadlineExceeded, "ack not received"), true},
		{"grpc not found", status.Error(codes.NotFound, "topic not found"), false},
		{"plain error", errors.New("encode failed"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublishUnconfirmed(tt.err))
		})
	}
}
