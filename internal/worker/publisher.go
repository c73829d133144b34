package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// ReplanPublisher enqueues trip replan jobs on a Pub/Sub topic. It is the
// API side of the worker queue and implements trip.PlanQueue.
type ReplanPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topicName string
	logger    zerolog.Logger
}

// ReplanPublisherConfig holds configuration for the replan publisher.
type ReplanPublisherConfig struct {
	ProjectID string
	TopicName string
	Logger    zerolog.Logger
}

// NewReplanPublisher creates a publisher for replan job messages.
func NewReplanPublisher(ctx context.Context, cfg ReplanPublisherConfig) (*ReplanPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &ReplanPublisher{
		client:    client,
		publisher: client.Publisher(cfg.TopicName),
		topicName: cfg.TopicName,
		logger:    cfg.Logger,
	}, nil
}

// EnqueueReplan publishes a replan job for the trip and waits for the
// server acknowledgement.
func (p *ReplanPublisher) EnqueueReplan(ctx context.Context, tripID string) error {
	data, err := json.Marshal(ReplanMessage{
		JobType: JobTypeReplan,
		TripID:  tripID,
	})
	if err != nil {
		return fmt.Errorf("encoding replan message: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{Data: data})
	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publishing replan message: %w", err)
	}

	p.logger.Debug().
		Str("trip_id", tripID).
		Str("message_id", id).
		Str("topic", p.topicName).
		Msg("replan enqueued")

	return nil
}

// Close stops the publisher and releases the client.
func (p *ReplanPublisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}
