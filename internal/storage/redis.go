package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fantasy-books/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis stores each key as a plain string value and announces writes on a
// pub/sub channel.
type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = ChangeChannel
	}
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return r.withPublish(ctx, key, func(pipe redis.Pipeliner) {
		pipe.Set(ctx, key, value, 0)
	})
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.withPublish(ctx, key, func(pipe redis.Pipeliner) {
		pipe.Del(ctx, key)
	})
}

func (r *Redis) withPublish(ctx context.Context, key string, write func(pipe redis.Pipeliner)) error {
	payload, err := json.Marshal(Change{Key: key, Origin: OriginFrom(ctx)})
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		write(pipe)
		pipe.Publish(ctx, r.channel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Watch(ctx context.Context) (<-chan Change, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	msgs := sub.Channel()
	out := make(chan Change, watchBuffer)
	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c, err := decodeChange(msg.Payload)
				if err != nil {
					logger.L().Warn("malformed kv change", zap.String("payload", msg.Payload), zap.Error(err))
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
