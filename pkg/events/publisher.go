package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/pkg/config"
)

// Event types emitted by the API.
const (
	TypeGroupCreated          = "group.created"
	TypeGroupDeleted          = "group.deleted"
	TypeGroupMemberJoined     = "group.member_joined"
	TypeGroupMemberLeft       = "group.member_left"
	TypeGroupInviteCreated    = "group.invite_created"
	TypeReportStatusChanged   = "report.status_changed"
	TypeContentRemoved        = "content.removed"
	TypeUserBanned            = "user.banned"
	TypeAnnouncementPublished = "announcement.published"
)

// Event is the envelope written to the broker.
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"-"`
	ActorID    string      `json:"actorId,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data,omitempty"`
}

// Publisher emits domain events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single Kafka topic keyed by aggregate id.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  *zap.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no brokers are set.
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Brokers) == 0 {
		logger.Info("kafka brokers not configured, domain events disabled")
		return NopPublisher{}
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
	}
	return newKafkaPublisher(writer, logger)
}

func newKafkaPublisher(writer messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, timeout: 5 * time.Second, logger: logger}
}

// Publish marshals evt and writes it synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", evt.Type, err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(evt.Key),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", evt.Type, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
