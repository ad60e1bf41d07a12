//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/adapter/kafka"
	"github.com/couchcryptid/impact-sim-service/internal/config"
	"github.com/couchcryptid/impact-sim-service/internal/impact"
	"github.com/couchcryptid/impact-sim-service/internal/observability"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-impact-simulations"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("impact-sim-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestSimulationPublishedToKafka runs a simulation through the service with
// the Kafka writer attached and reads the published envelope back.
func TestSimulationPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.CheckReadiness(ctx))

	metrics := observability.NewMetricsForTesting()
	now := time.Date(2026, 4, 26, 12, 0, 0, 0, time.UTC)
	svc := simulation.New(logger, metrics,
		simulation.WithClock(clockwork.NewFakeClockAt(now)),
		simulation.WithPublisher("kafka", writer),
	)

	run, err := svc.Simulate(ctx, simulation.Request{Parameters: impact.Parameters{
		Diameter: 500, Density: 3000, Velocity: 25, Angle: 60, Latitude: 0, Longitude: -140,
	}})
	require.NoError(t, err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     500 * time.Millisecond,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, run.ID, string(msg.Key))
	assert.Equal(t, impact.TargetOcean, headers["target_type"])
	assert.Equal(t, now.Format(time.RFC3339), headers["simulated_at"])

	var got simulation.Run
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, got.SimulatedAt.Equal(now))
	require.NotNil(t, got.Result.Tsunami)
	assert.InEpsilon(t, run.Result.Energy.MegatonsTNT, got.Result.Energy.MegatonsTNT, 1e-12)
	assert.Equal(t, "Pacific Ocean", got.Result.Input.LocationName)
}
