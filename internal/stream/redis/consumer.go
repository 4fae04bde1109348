package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/povarna/generative-ai-agents/guard-agent/internal/analyzer"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Consumer struct {
	client        *redis.Client
	requestStream string
	resultStream  string
	groupID       string
	consumerName  string
	analyzer      *analyzer.Analyzer
	logger        *zerolog.Logger
}

func NewConsumer(client *redis.Client, requestStream string, resultStream string, groupID string, consumerName string, a *analyzer.Analyzer, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:        client,
		requestStream: requestStream,
		resultStream:  resultStream,
		groupID:       groupID,
		consumerName:  consumerName,
		analyzer:      a,
		logger:        logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.requestStream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.requestStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.requestStream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var req models.StreamRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	result := models.StreamResult{RequestID: req.RequestID}

	verdict, err := c.analyzer.Analyze(ctx, req.AnalyzeRequest)
	if err != nil {
		// Infrastructure failure, not a verdict. Publish the error so
		// the producer side never mistakes it for a safety decision.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Analysis failed")
		result.Error = err.Error()
	} else {
		result.Verdict = &verdict
		c.logger.Info().
			Str("id", msg.ID).
			Bool("safe", verdict.Safe).
			Msg("Analysis complete")
	}

	c.publish(ctx, msg.ID, result)
	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, msgID string, result models.StreamResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to encode result")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]interface{}{"payload": string(data)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to publish result")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.requestStream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
