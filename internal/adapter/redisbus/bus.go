// Package redisbus bridges notify.Hub instances through Redis pub/sub so
// that every server instance sees the changes committed by the others.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/stockcheck-backend/internal/notify"
)

// deliverer receives changes published by other instances.
type deliverer interface {
	Deliver(c notify.Change) int
}

type envelope struct {
	Origin string        `json:"origin"`
	Change notify.Change `json:"change"`
}

// Bus publishes local changes to a Redis channel and replays remote ones.
type Bus struct {
	client   *redis.Client
	channel  string
	instance string
	log      *slog.Logger
}

// NewClient parses url and verifies connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// New creates a bus on channel. Each bus gets a random instance id used to
// skip its own messages on the way back.
func New(client *redis.Client, channel string, log *slog.Logger) *Bus {
	return &Bus{
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		log:      log.With("component", "redisbus"),
	}
}

// Ping reports whether Redis is reachable.
func (b *Bus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Forward implements notify.Forwarder.
func (b *Bus) Forward(ctx context.Context, c notify.Change) error {
	payload, err := json.Marshal(envelope{Origin: b.instance, Change: c})
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Run subscribes to the channel and delivers remote changes to hub until
// ctx is cancelled.
func (b *Bus) Run(ctx context.Context, hub deliverer) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.log.InfoContext(ctx, "redis bus subscribed", slog.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.handle(ctx, hub, msg.Payload)
		}
	}
}

func (b *Bus) handle(ctx context.Context, hub deliverer, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		b.log.WarnContext(ctx, "bad redis payload", slog.String("error", err.Error()))
		return
	}
	if env.Origin == b.instance {
		return
	}
	hub.Deliver(env.Change)
}
