package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// JobTypeReplan is the job type for trip replan messages.
const JobTypeReplan = "trip_replan"

// PubSubHandler handles Pub/Sub messages for the planning worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	replanJob        *ReplanJob
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	ReplanJob        *ReplanJob
	Logger           zerolog.Logger
}

// ReplanMessage represents a trip replan job message.
type ReplanMessage struct {
	JobType string `json:"job_type"`
	TripID  string `json:"trip_id"`
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Replans are cheap; keep a modest number in flight.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		replanJob:        cfg.ReplanJob,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	var replanMsg ReplanMessage
	if err := json.Unmarshal(msg.Data, &replanMsg); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	if replanMsg.JobType != JobTypeReplan {
		logger.Warn().Str("job_type", replanMsg.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}
	if replanMsg.TripID == "" {
		logger.Warn().Msg("replan message missing trip id")
		msg.Ack()
		return
	}

	if err := h.replanJob.Run(ctx, replanMsg.TripID); err != nil {
		logger.Error().Err(err).Str("trip_id", replanMsg.TripID).Msg("replan failed")
		msg.Nack()
		return
	}

	logger.Info().
		Str("trip_id", replanMsg.TripID).
		Dur("duration", time.Since(startTime)).
		Msg("replan completed")

	msg.Ack()
}
