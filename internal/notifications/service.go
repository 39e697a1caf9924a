package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
)

// Service owns the full itinerary pipeline: publishing confirmations to
// Kafka and running the consumer workers that turn them into emails.
type Service interface {
	SendItinerary(ctx context.Context, notification *ItineraryNotification) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ServiceConfig struct {
	Environment        string
	KafkaBrokers       []string
	ItineraryTopic     string
	ConsumerGroupID    string
	NumConsumerWorkers int
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPFromEmail      string
	SMTPFromName       string
}

func NewServiceConfigFromEnv() *ServiceConfig {
	return &ServiceConfig{
		Environment:        getEnvString("GIN_MODE", "development"),
		KafkaBrokers:       []string{getEnvString("KAFKA_BROKERS", "localhost:9092")},
		ItineraryTopic:     getEnvString("ITINERARY_TOPIC", "itinerary-notifications"),
		ConsumerGroupID:    getEnvString("CONSUMER_GROUP_ID", "flightly-itinerary-workers"),
		NumConsumerWorkers: getEnvInt("NUM_CONSUMER_WORKERS", 3),
		SMTPHost:           getEnvString("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnvString("SMTP_USERNAME", ""),
		SMTPPassword:       getEnvString("SMTP_PASSWORD", ""),
		SMTPFromEmail:      getEnvString("FROM_EMAIL", ""),
		SMTPFromName:       getEnvString("SMTP_FROM_NAME", "Flightly"),
	}
}

type itineraryService struct {
	config       *ServiceConfig
	producer     ItineraryProducer
	consumer     ItineraryConsumer
	emailService EmailService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = NewServiceConfigFromEnv()
	}

	// Without SMTP credentials the pipeline still runs end to end; emails
	// land in the log instead of an inbox.
	var emailService EmailService
	if config.SMTPHost != "" && config.SMTPUsername != "" {
		emailService = NewSMTPEmailService(&SMTPConfig{
			Host:      config.SMTPHost,
			Port:      config.SMTPPort,
			Username:  config.SMTPUsername,
			Password:  config.SMTPPassword,
			FromEmail: config.SMTPFromEmail,
			FromName:  config.SMTPFromName,
			UseTLS:    true,
		})
	} else {
		log.Printf("SMTP not configured, itinerary emails will be logged only")
		emailService = NewMockEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.Topic = config.ItineraryTopic

	producer, err := NewKafkaItineraryProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topics = []string{config.ItineraryTopic}
	consumerConfig.GroupID = config.ConsumerGroupID

	consumer, err := NewKafkaItineraryConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("Itinerary notification service initialized (topic: %s)", config.ItineraryTopic)

	return &itineraryService{
		config:       config,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (s *itineraryService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("Starting itinerary notification service...")

	if err := s.consumer.StartConsumers(s.ctx, s.config.NumConsumerWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	log.Printf("Itinerary notification service started")
	return nil
}

func (s *itineraryService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("Stopping itinerary notification service...")

	s.cancel()

	if err := s.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := s.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	s.isRunning = false
	log.Printf("Itinerary notification service stopped")
	return nil
}

func (s *itineraryService) SendItinerary(ctx context.Context, notification *ItineraryNotification) error {
	return s.producer.PublishNotification(ctx, notification)
}

func (s *itineraryService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	isRunning := s.isRunning
	s.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := s.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}

	if err := s.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}

// Helper functions for environment variables
func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
