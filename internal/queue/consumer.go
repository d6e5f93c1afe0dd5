package queue

import (
	"context"
	"time"

	"study-tracker/internal/config"
	"study-tracker/internal/logger"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client    *redis.Client
	queue     string
	dlqSuffix string
	log       zerolog.Logger
}

type MessageHandler func(ctx context.Context, data []byte) error

func NewConsumer(redisClient *RedisClient, cfg *config.Config) *Consumer {
	return &Consumer{
		client:    redisClient.Client(),
		queue:     cfg.Redis.SummaryQueue,
		dlqSuffix: cfg.Redis.DLQSuffix,
		log:       logger.For("queue"),
	}
}

// ConsumeSummaryQueue blocks until ctx is done. Messages the handler rejects
// are moved to the dead letter queue.
func (c *Consumer) ConsumeSummaryQueue(ctx context.Context, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			result, err := c.client.BRPop(ctx, 5*time.Second, c.queue).Result()
			if err != nil {
				if err == redis.Nil || ctx.Err() != nil {
					continue
				}
				c.log.Error().Err(err).Str("queue", c.queue).Msg("Failed to consume message")
				continue
			}

			if len(result) < 2 {
				continue
			}

			message := result[1]
			if err := handler(ctx, []byte(message)); err != nil {
				c.log.Error().Err(err).Str("queue", c.queue).Msg("Failed to process message")
				dlqName := c.queue + c.dlqSuffix
				if dlqErr := c.client.LPush(ctx, dlqName, message).Err(); dlqErr != nil {
					c.log.Error().Err(dlqErr).Str("dlq", dlqName).Msg("Failed to move message to DLQ")
				}
			}
		}
	}
}
