package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultChannel is the Redis Pub/Sub channel team events travel on.
const DefaultChannel = "icebreaker:events"

// Event types.
const (
	TypeQuestionUsed    = "question_used"
	TypeQuestionSkipped = "question_skipped"
	TypeTeamReset       = "team_reset"
)

// Event is a change to one team's ledgers.
type Event struct {
	Type       string    `json:"type"`
	TeamID     uuid.UUID `json:"teamId"`
	QuestionID uuid.UUID `json:"questionId,omitempty"`
	UserName   string    `json:"userName,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher delivers team events to live listeners.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes JSON encoded events on a Pub/Sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  zerolog.Logger
}

func NewRedisPublisher(client *redis.Client, channel string, logger zerolog.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With().Str("component", "events_publisher").Logger(),
	}
}

// Publish encodes and sends evt. A zero At is stamped with the current time.
func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	p.logger.Debug().Str("type", evt.Type).Str("team_id", evt.TeamID.String()).Msg("event published")
	return nil
}
