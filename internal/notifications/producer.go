package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// ItineraryProducer interface defines the contract for publishing itinerary notifications
type ItineraryProducer interface {
	PublishNotification(ctx context.Context, notification *ItineraryNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka itinerary producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "itinerary-notifications",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaItineraryProducer publishes itinerary notifications to Kafka
type KafkaItineraryProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaItineraryProducer creates a new Kafka itinerary producer
func NewKafkaItineraryProducer(config *KafkaProducerConfig) (ItineraryProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps all messages for one PNR on the same partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("Kafka itinerary producer created successfully")
	return &KafkaItineraryProducer{producer: producer, config: config}, nil
}

// PublishNotification publishes a single itinerary notification to Kafka
func (kp *KafkaItineraryProducer) PublishNotification(ctx context.Context, notification *ItineraryNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kp.createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	log.Printf("Itinerary notification published - Topic: %s, Partition: %d, Offset: %d, PNR: %s, Recipient: %s",
		kp.config.Topic, partition, offset, notification.PNR, notification.RecipientEmail)

	return nil
}

// createHeaders creates Kafka headers for itinerary notifications
func (kp *KafkaItineraryProducer) createHeaders(notification *ItineraryNotification) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("pnr_no"), Value: []byte(notification.PNR)},
		{Key: []byte("flight_number"), Value: []byte(notification.FlightNumber)},
		{Key: []byte("recipient_email"), Value: []byte(notification.RecipientEmail)},
		{Key: []byte("producer"), Value: []byte("flightly-notifications")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kp *KafkaItineraryProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("Kafka itinerary producer closed")
	}
	return nil
}

// HealthCheck performs a health check on the Kafka producer
func (kp *KafkaItineraryProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kp.config.Topic == "" {
		return fmt.Errorf("health check failed - topic not configured")
	}
	return nil
}
