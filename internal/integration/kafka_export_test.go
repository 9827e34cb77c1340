//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/eonet-tracker/internal/adapter/eonet"
	kafkaadapter "github.com/couchcryptid/eonet-tracker/internal/adapter/kafka"
	"github.com/couchcryptid/eonet-tracker/internal/cache"
	"github.com/couchcryptid/eonet-tracker/internal/config"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
	"github.com/couchcryptid/eonet-tracker/internal/refresh"
)

const testExportTopic = "test-eonet-events"

// --- infrastructure helpers ---

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func newConsumer(t *testing.T, broker, topic string) *kafkago.Reader {
	t.Helper()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// exportedMessage holds a deserialized message read from the export topic.
type exportedMessage struct {
	Event   domain.Event
	Key     string
	Headers map[string]string
}

// readExported reads a single message from the consumer and deserializes it.
func readExported(ctx context.Context, t *testing.T, consumer *kafkago.Reader) exportedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from export topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal exported event")

	return exportedMessage{
		Event:   event,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// --- feed fixtures ---

const feedEventsPayload = `{
  "title": "EONET Events",
  "events": [
    {
      "id": "EONET_9931",
      "title": "Hurricane Delta",
      "categories": [{"id": "severeStorms", "title": "Severe Storms"}],
      "geometry": [
        {"date": "2026-03-10T06:00:00Z", "type": "Point", "coordinates": [-88.5, 24.3], "magnitudeValue": 65, "magnitudeUnit": "kts"}
      ]
    },
    {
      "id": "EONET_9932",
      "title": "Iceberg A-76A",
      "categories": [{"id": "seaLakeIce", "title": "Sea and Lake Ice"}],
      "geometry": [
        {"date": "2026-03-12T00:00:00Z", "type": "Point", "coordinates": [-40.1, -75.5]}
      ]
    }
  ]
}`

const feedCategoriesPayload = `{
  "categories": [
    {"id": "severeStorms", "title": "Severe Storms"},
    {"id": "seaLakeIce", "title": "Sea and Lake Ice"}
  ]
}`

func startFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedEventsPayload))
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedCategoriesPayload))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// --- tests ---

// TestPublisherRoundTrip verifies the adapter layer: kafka.Publisher writes a
// batch that a plain consumer can read back with intact keys, headers, and
// event payloads.
func TestPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testExportTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaExportTopic: testExportTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, clockwork.NewRealClock(), discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	point := orb.Point{-88.5, 24.3}
	events := []domain.Event{
		{
			ID:    "EONET_9931",
			Title: "Hurricane Delta",
			Categories: []domain.Category{
				{ID: "severeStorms", Title: "Severe Storms"},
			},
			Geometry: []domain.Geometry{
				{Date: "2026-03-10T06:00:00Z", Coordinates: &point, Magnitude: domain.Magnitude{Value: 65, Valid: true}, MagnitudeUnit: "kts"},
			},
		},
		{
			ID:    "EONET_9933",
			Title: "Kilauea",
			Categories: []domain.Category{
				{ID: "volcanoes", Title: "Volcanoes"},
			},
			Geometry: []domain.Geometry{
				{Date: "2026-03-11T00:00:00Z"},
			},
		},
	}
	require.NoError(t, publisher.PublishEvents(ctx, events))

	consumer := newConsumer(t, broker, testExportTopic)

	first := readExported(ctx, t, consumer)
	assert.Equal(t, "EONET_9931", first.Key)
	assert.Equal(t, "severeStorms", first.Headers["category"])
	_, err := time.Parse(time.RFC3339, first.Headers["exported_at"])
	assert.NoError(t, err, "exported_at should be valid RFC3339")
	assert.Equal(t, events[0], first.Event)

	second := readExported(ctx, t, consumer)
	assert.Equal(t, "EONET_9933", second.Key)
	assert.Equal(t, "volcanoes", second.Headers["category"])
	assert.Equal(t, events[1], second.Event)
}

// TestSchedulerExportEndToEnd wires feed client, cache, scheduler, and
// publisher against real Kafka and verifies that a refresh fans the fetched
// window out to the export topic.
func TestSchedulerExportEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testExportTopic)

	feed := startFeedServer(t)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaExportTopic: testExportTopic,
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetricsForTesting()

	client := eonet.NewClient(feed.URL, 10*time.Second, clock, metrics, discardLogger())
	store := cache.New(client, 30, clock, metrics, discardLogger())
	publisher := kafkaadapter.NewPublisher(cfg, clock, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	scheduler := refresh.New(store, publisher, time.Minute, clock, metrics, discardLogger())

	schedulerCtx, schedulerCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- scheduler.Run(schedulerCtx) }()

	require.Eventually(t, func() bool {
		return scheduler.CheckReadiness(ctx) == nil
	}, 30*time.Second, 200*time.Millisecond, "scheduler never became ready")

	consumer := newConsumer(t, broker, testExportTopic)

	received := map[string]exportedMessage{}
	for len(received) < 2 {
		msg := readExported(ctx, t, consumer)
		received[msg.Key] = msg
	}

	schedulerCancel()
	require.NoError(t, <-errCh)

	storm, ok := received["EONET_9931"]
	require.True(t, ok, "expected EONET_9931 on export topic")
	assert.Equal(t, "Hurricane Delta", storm.Event.Title)
	assert.Equal(t, "severeStorms", storm.Headers["category"])
	mag, hasMag := storm.Event.EffectiveMagnitude()
	require.True(t, hasMag)
	assert.Equal(t, 65.0, mag)

	iceberg, ok := received["EONET_9932"]
	require.True(t, ok, "expected EONET_9932 on export topic")
	assert.Equal(t, "seaLakeIce", iceberg.Headers["category"])
	p, hasPoint := iceberg.Event.Point()
	require.True(t, hasPoint)
	assert.Equal(t, -75.5, p.Lat())

	// The cache holds the same snapshot the export was cut from.
	events, ok := store.Events()
	require.True(t, ok)
	assert.Len(t, events, 2)
}
