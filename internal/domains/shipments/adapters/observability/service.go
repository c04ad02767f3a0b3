package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

const tracerName = "github.com/udea/couriersync/internal/domains/shipments/adapters/observability/service"

// Service decorates the shipments lifecycle manager with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core shipments service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateShipment(ctx context.Context, input *types.CreateShipmentInput) (*types.ShipmentProjection, error) {
	var clientID int64
	if input != nil {
		clientID = input.ClientID
	}
	ctx, span := s.tracer.Start(ctx, "ShipmentService.CreateShipment", trace.WithAttributes(attribute.Int64("shipment.client_id", clientID)))
	defer span.End()

	s.logInfo(ctx, "creating shipment", slog.Int64("shipment.client_id", clientID))
	result, err := s.inner.CreateShipment(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create shipment", slog.Int64("shipment.client_id", clientID))
	}
	span.SetAttributes(attribute.Int64("shipment.id", result.Entity.ID), attribute.String("shipment.tracking_code", result.Entity.TrackingCode))
	s.metrics.recordCreated(ctx, result.Entity.Status)
	s.logInfo(ctx, "shipment created",
		slog.Int64("shipment.id", result.Entity.ID),
		slog.String("shipment.tracking_code", result.Entity.TrackingCode),
		slog.String("status", string(result.Entity.Status)))
	return result, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*types.ShipmentProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.FindByID", trace.WithAttributes(attribute.Int64("shipment.id", id)))
	defer span.End()

	result, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load shipment", slog.Int64("shipment.id", id))
	}
	span.SetAttributes(attribute.Bool("shipment.found", result != nil))
	return result, nil
}

func (s *Service) FindByTrackingCode(ctx context.Context, code string) (*types.ShipmentProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.FindByTrackingCode", trace.WithAttributes(attribute.String("shipment.tracking_code", code)))
	defer span.End()

	result, err := s.inner.FindByTrackingCode(ctx, code)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load shipment by tracking code", slog.String("shipment.tracking_code", code))
	}
	span.SetAttributes(attribute.Bool("shipment.found", result != nil))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*types.ShipmentProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shipments")
	}
	span.SetAttributes(attribute.Int("shipment.count", len(result)))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch *types.UpdateShipmentInput) (*types.ShipmentProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Update", trace.WithAttributes(attribute.Int64("shipment.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating shipment", slog.Int64("shipment.id", id))
	result, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update shipment", slog.Int64("shipment.id", id))
	}
	s.logInfo(ctx, "shipment updated", slog.Int64("shipment.id", id), slog.String("status", string(result.Entity.Status)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status, observations string) (*types.ShipmentProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.UpdateStatus",
		trace.WithAttributes(attribute.Int64("shipment.id", id), attribute.String("shipment.requested_status", string(status))))
	defer span.End()

	s.logInfo(ctx, "changing shipment status", slog.Int64("shipment.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, id, status, observations)
	if err != nil {
		s.metrics.recordTransition(ctx, status, false)
		return nil, s.handleError(ctx, span, err, "failed to change shipment status", slog.Int64("shipment.id", id), slog.String("status", string(status)))
	}
	s.metrics.recordTransition(ctx, status, true)
	s.logInfo(ctx, "shipment status changed", slog.Int64("shipment.id", id), slog.String("status", string(result.Entity.Status)))
	return result, nil
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.DeleteByID", trace.WithAttributes(attribute.Int64("shipment.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting shipment", slog.Int64("shipment.id", id))
	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete shipment", slog.Int64("shipment.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "shipment deleted", slog.Int64("shipment.id", id))
	return nil
}

func (s *Service) IsShipmentPending(ctx context.Context, id int64) (bool, error) {
	return s.inner.IsShipmentPending(ctx, id)
}

func (s *Service) CanDriverUpdateStatus(ctx context.Context, id int64, proposed domain.Status) (bool, error) {
	return s.inner.CanDriverUpdateStatus(ctx, id, proposed)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.inner.Count(ctx)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	shipmentsCreated  metric.Int64Counter
	shipmentsDeleted  metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("shipments.service.created", metric.WithDescription("Number of shipments created"))
	deleted, _ := m.Int64Counter("shipments.service.deleted", metric.WithDescription("Number of shipments deleted"))
	transitions, _ := m.Int64Counter("shipments.service.status_transitions", metric.WithDescription("Status change attempts by target status and outcome"))
	return serviceMetrics{shipmentsCreated: created, shipmentsDeleted: deleted, statusTransitions: transitions}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.Status) {
	if m.shipmentsCreated != nil {
		m.shipmentsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("shipment.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.shipmentsDeleted != nil {
		m.shipmentsDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status, ok bool) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("shipment.status", string(status)),
			attribute.Bool("allowed", ok),
		))
	}
}

var _ ports.Service = (*Service)(nil)
