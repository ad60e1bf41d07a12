package simulation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/impact"
	"github.com/couchcryptid/impact-sim-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Request is a scenario as received from a caller. ApplyTrajectory overrides
// the service default when non-nil.
type Request struct {
	impact.Parameters
	ApplyTrajectory *bool
}

// Aim is the point the caller targeted, before any trajectory offset.
type Aim struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Run is a completed simulation as delivered to publishers.
type Run struct {
	ID                string        `json:"id"`
	SimulatedAt       time.Time     `json:"simulated_at"`
	Aim               Aim           `json:"aim"`
	TrajectoryApplied bool          `json:"trajectory_applied"`
	Result            impact.Result `json:"result"`
}

// Publisher receives every completed run. Failures are logged and counted
// but never fail the simulation.
type Publisher interface {
	Publish(ctx context.Context, run Run) error
}

type namedPublisher struct {
	name string
	pub  Publisher
}

// Service validates requests, runs the impact calculator, and fans results
// out to publishers.
type Service struct {
	calc       *impact.Calculator
	clock      clockwork.Clock
	publishers []namedPublisher
	trajectory bool
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithCalculator replaces the default reference-table calculator.
func WithCalculator(c *impact.Calculator) Option {
	return func(s *Service) { s.calc = c }
}

// WithClock sets the time source used for SimulatedAt.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithPublisher adds a publisher; name labels its error metrics and logs.
func WithPublisher(name string, p Publisher) Option {
	return func(s *Service) { s.publishers = append(s.publishers, namedPublisher{name: name, pub: p}) }
}

// WithTrajectoryOffset sets whether requests that don't specify it have the
// trajectory offset applied to their aim point.
func WithTrajectoryOffset(enabled bool) Option {
	return func(s *Service) { s.trajectory = enabled }
}

// New creates a Service.
func New(logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		calc:    impact.NewCalculator(nil),
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs one scenario. The only error is an *impact.InvalidParameterError.
func (s *Service) Simulate(ctx context.Context, req Request) (Run, error) {
	p := req.Parameters
	if err := impact.Validate(p); err != nil {
		s.metrics.SimulationErrors.WithLabelValues("invalid_parameter").Inc()
		return Run{}, err
	}

	apply := s.trajectory
	if req.ApplyTrajectory != nil {
		apply = *req.ApplyTrajectory
	}
	aim := Aim{Latitude: p.Latitude, Longitude: p.Longitude}
	if apply {
		p.Latitude, p.Longitude = impact.ApplyTrajectoryOffset(p.Latitude, p.Longitude, p.Angle, p.Velocity, p.Diameter)
	}

	start := time.Now()
	result := s.calc.Calculate(p)
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())

	run := Run{
		ID:                uuid.NewString(),
		SimulatedAt:       s.clock.Now().UTC(),
		Aim:               aim,
		TrajectoryApplied: apply,
		Result:            result,
	}

	s.metrics.Simulations.WithLabelValues(result.Input.TargetType).Inc()
	if result.GlobalCatastrophe {
		s.metrics.GlobalCatastrophes.Inc()
	}
	s.logger.Debug("simulation complete",
		"simulation_id", run.ID,
		"target_type", result.Input.TargetType,
		"location", result.Input.LocationName,
		"megatons_tnt", result.Energy.MegatonsTNT,
	)

	s.publish(ctx, run)
	return run, nil
}

func (s *Service) publish(ctx context.Context, run Run) {
	for _, np := range s.publishers {
		if err := np.pub.Publish(ctx, run); err != nil {
			s.metrics.PublishErrors.WithLabelValues(np.name).Inc()
			s.logger.Warn("publish simulation failed",
				"publisher", np.name,
				"simulation_id", run.ID,
				"error", err,
			)
		}
	}
}

// CheckReadiness joins the errors of every publisher that can be probed and
// is not ready. The
// calculator itself has no dependencies and is always ready.
func (s *Service) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, np := range s.publishers {
		rc, ok := np.pub.(sharedobs.ReadinessChecker)
		if !ok {
			continue
		}
		if err := rc.CheckReadiness(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
