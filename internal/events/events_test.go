package events

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/gokatarajesh/icebreaker/pkg/http/ws"
)

type recordingTransport struct {
	written chan interface{}
}

func (r *recordingTransport) WriteJSON(v interface{}) error {
	r.written <- v
	return nil
}
func (r *recordingTransport) WriteMessage(int, []byte) error           { return nil }
func (r *recordingTransport) ReadJSON(interface{}) error               { return io.EOF }
func (r *recordingTransport) SetReadDeadline(time.Time) error          { return nil }
func (r *recordingTransport) SetWriteDeadline(time.Time) error         { return nil }
func (r *recordingTransport) SetPongHandler(func(appData string) error) {}
func (r *recordingTransport) Close() error                             { return nil }

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPublishEncodesEvent(t *testing.T) {
	client := newRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "test:events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(client, "test:events", zerolog.Nop())
	teamID := uuid.New()
	require.NoError(t, pub.Publish(ctx, Event{Type: TypeTeamReset, TeamID: teamID}))

	select {
	case msg := <-sub.Channel():
		var evt Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &evt))
		assert.Equal(t, TypeTeamReset, evt.Type)
		assert.Equal(t, teamID, evt.TeamID)
		assert.False(t, evt.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not received")
	}
}

func TestBroadcasterForwardsToTeam(t *testing.T) {
	client := newRedis(t)
	hub := ws.NewHub(zerolog.Nop())
	teamID := uuid.New()

	tr := &recordingTransport{written: make(chan interface{}, 4)}
	conn := ws.NewConnection(tr, zerolog.Nop())
	hub.Join(teamID, conn)
	go conn.WritePump(time.Minute)
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewBroadcaster(client, hub, "", zerolog.Nop())
	go func() { _ = b.Run(ctx) }()

	pub := NewRedisPublisher(client, "", zerolog.Nop())
	questionID := uuid.New()

	// The subscriber may not be attached yet; publish until the message lands.
	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, pub.Publish(ctx, Event{
			Type:       TypeQuestionUsed,
			TeamID:     teamID,
			QuestionID: questionID,
			UserName:   "alice",
		}))
		select {
		case got := <-tr.written:
			msg, ok := got.(ws.Message)
			require.True(t, ok)
			assert.Equal(t, TypeQuestionUsed, msg.Type)
			var evt Event
			require.NoError(t, json.Unmarshal(msg.Payload, &evt))
			assert.Equal(t, questionID, evt.QuestionID)
			assert.Equal(t, "alice", evt.UserName)
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("event not forwarded")
		}
	}
}

func TestRunWithoutRedisReturns(t *testing.T) {
	b := NewBroadcaster(nil, nil, "", zerolog.Nop())
	assert.NoError(t, b.Run(context.Background()))
}
