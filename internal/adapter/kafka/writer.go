package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/config"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes completed simulations to a Kafka topic.
// It implements simulation.Publisher.
type Writer struct {
	writer  *kafkago.Writer
	brokers []string
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, brokers: cfg.KafkaBrokers, logger: logger}
}

// Publish serializes a run and writes it keyed by simulation ID.
func (w *Writer) Publish(ctx context.Context, run simulation.Run) error {
	msg, err := serializeToMessage(run)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write simulation %s: %w", run.ID, err)
	}
	w.logger.Debug("simulation published", "simulation_id", run.ID, "topic", w.writer.Topic)
	return nil
}

// CheckReadiness succeeds if any configured broker accepts a connection.
func (w *Writer) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, b := range w.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_ = conn.Close()
		return nil
	}
	return fmt.Errorf("kafka not reachable: %w", errors.Join(errs...))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Run into a Kafka message.
func serializeToMessage(run simulation.Run) (kafkago.Message, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize simulation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(run.ID),
		Value: data,
		Time:  run.SimulatedAt,
		Headers: []kafkago.Header{
			{Key: "target_type", Value: []byte(run.Result.Input.TargetType)},
			{Key: "global_catastrophe", Value: []byte(strconv.FormatBool(run.Result.GlobalCatastrophe))},
			{Key: "simulated_at", Value: []byte(run.SimulatedAt.Format(time.RFC3339))},
		},
	}, nil
}
