package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./emitter.go -destination=./mocks/emitter_mock.go -package=mocks

import (
	"context"
	"villa/config"

	"github.com/rs/zerolog/log"
)

// Emitter broadcasts domain events to any live observers (dashboards).
// Delivery is fire-and-forget: failures are logged and never propagate to the
// operation that emitted the event.
type Emitter interface {
	EmitBookingEvent(ctx context.Context, key string, payload any)
	EmitTaskEvent(ctx context.Context, key string, payload any)
}

type emitterImpl struct {
	client Client
	cfg    *config.Config
}

func NewEmitter(client Client, cfg *config.Config) Emitter {
	return &emitterImpl{
		client: client,
		cfg:    cfg,
	}
}

func (e *emitterImpl) EmitBookingEvent(ctx context.Context, key string, payload any) {
	e.emit(ctx, e.cfg.Kafka.Topics.Bookings, key, payload)
}

func (e *emitterImpl) EmitTaskEvent(ctx context.Context, key string, payload any) {
	e.emit(ctx, e.cfg.Kafka.Topics.Tasks, key, payload)
}

func (e *emitterImpl) emit(ctx context.Context, topic, key string, payload any) {
	if !e.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := e.client.SendMessages(c, topic, Message{Key: key, Value: payload}); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("failed to emit event")
		}
	}()
}
