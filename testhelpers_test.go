//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/events"
	"github.com/fondos-platform/service-subscription/internal/platform/database"
	"github.com/fondos-platform/service-subscription/internal/platform/kafka"
	"github.com/fondos-platform/service-subscription/internal/repository"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedClock returns a constant instant so ordering assertions are deterministic.
type fixedClock struct{ now time.Time }

func (c fixedClock) NowUTC() time.Time { return c.now }

// subscriptionStack holds wired-up services over the PostgreSQL store.
type subscriptionStack struct {
	Store         *repository.Store
	Subscriptions *application.SubscriptionService
	Products      *application.ProductService
	Clients       *application.ClientService
	Branches      *application.BranchService
	Availability  *application.AvailabilityService
	Schedule      *application.ScheduleService
}

// setupPostgres starts a PostgreSQL testcontainer and applies the versioned migrations.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_subscriptions",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := database.PostgresConfig{
		Host: pgHost, Port: pgPort.Port(), User: "test", Password: "test",
		DBName: "test_subscriptions", SSLMode: "disable",
	}
	logger := zap.NewNop()

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(cfg, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(cfg.DatabaseURL(), "migrations", logger))
	return db
}

// setupSubscriptionStack wires services over the PostgreSQL store and seeds defaults.
func setupSubscriptionStack(t *testing.T, db *gorm.DB, gateway *recordingGateway, now time.Time) *subscriptionStack {
	t.Helper()
	logger := zap.NewNop()
	store := repository.NewStore(db)

	stack := &subscriptionStack{
		Store:         store,
		Subscriptions: application.NewSubscriptionService(store, store.Repositories(), gateway, fixedClock{now: now}, nil, logger),
		Products:      application.NewProductService(store.Products(), logger),
		Clients:       application.NewClientService(store, store.Clients(), logger),
		Branches:      application.NewBranchService(store, store.Branches(), logger),
		Availability:  application.NewAvailabilityService(store, store.Availability(), logger),
		Schedule:      application.NewScheduleService(store, store.Appointments(), logger),
	}
	ctx := context.Background()
	require.NoError(t, stack.Products.EnsureCatalog(ctx))
	require.NoError(t, stack.Clients.EnsureDefaultClient(ctx))
	return stack
}

// setupKafka starts a Kafka testcontainer and pre-creates the subscription topic.
func setupKafka(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, events.TopicSubscriptionEvents)
	return brokers
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     fmt.Sprintf("test-assert-%d", time.Now().UnixNano()),
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}

// deliveredMessage is one email or SMS handed to the recording sender.
type deliveredMessage struct {
	Channel   string
	Recipient string
	Body      string
}

// recordingSender captures what the notification consumer would have sent.
type recordingSender struct {
	mu       sync.Mutex
	messages []deliveredMessage
}

func (s *recordingSender) SendEmail(_ context.Context, to, _, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, deliveredMessage{Channel: "email", Recipient: to, Body: body})
	return "em_test", nil
}

func (s *recordingSender) SendSMS(_ context.Context, phone, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, deliveredMessage{Channel: "sms", Recipient: phone, Body: body})
	return "sms_test", nil
}

func (s *recordingSender) Messages() []deliveredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]deliveredMessage(nil), s.messages...)
}
