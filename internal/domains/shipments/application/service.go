package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/policy"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
	"github.com/udea/couriersync/internal/shared/principal"
)

const (
	maxTrackingCodeAttempts = 5
	defaultTrackingCacheTTL = 10 * time.Minute
)

// Service orchestrates the shipment lifecycle against the store.
// Role checks for a request belong to the Gatekeeper; Service re-evaluates them
// inside the store's atomic section using the principal carried by ctx.
type Service struct {
	repo     ports.Repository
	clients  ports.ClientLookup
	events   ports.EventPublisher
	cache    ports.TrackingCache
	cacheTTL time.Duration
	codes    func() (string, error)
	now      func() time.Time
}

// Option customises optional collaborators.
type Option func(*Service)

// WithEventPublisher publishes lifecycle events after each committed mutation.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithTrackingCache enables read-through caching of tracking code lookups.
func WithTrackingCache(cache ports.TrackingCache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithTrackingCodeGenerator overrides tracking code generation.
func WithTrackingCodeGenerator(generate func() (string, error)) Option {
	return func(s *Service) {
		if generate != nil {
			s.codes = generate
		}
	}
}

// NewService wires the shipments service with its dependencies.
func NewService(repo ports.Repository, clients ports.ClientLookup, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		clients:  clients,
		events:   ports.NoopEventPublisher,
		cache:    ports.NoopTrackingCache,
		cacheTTL: defaultTrackingCacheTTL,
		codes:    domain.GenerateTrackingCode,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateShipment validates the input, resolves the client and persists a new
// shipment under a freshly generated tracking code.
func (s *Service) CreateShipment(ctx context.Context, input *types.CreateShipmentInput) (*types.ShipmentProjection, error) {
	if input == nil {
		return nil, invalidInput("shipment payload is required")
	}
	shipment, err := domain.NewShipment(input.ClientID, input.Status, input.Priority, input.Observations)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureClient(ctx, shipment.ClientID); err != nil {
		return nil, err
	}
	for attempt := 0; attempt < maxTrackingCodeAttempts; attempt++ {
		code, err := s.codes()
		if err != nil {
			return nil, fmt.Errorf("generate tracking code: %w", err)
		}
		candidate := shipment.Clone()
		if err := candidate.AssignTrackingCode(code); err != nil {
			return nil, mapError(err)
		}
		created, err := s.repo.Create(ctx, candidate)
		if errors.Is(err, ports.ErrDuplicateTrackingCode) {
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		s.publish(ctx, domain.Event{
			Type:         domain.EventShipmentCreated,
			ShipmentID:   created.Entity.ID,
			TrackingCode: created.Entity.TrackingCode,
			Status:       created.Entity.Status,
			Observations: created.Entity.Observations,
		})
		return created, nil
	}
	return nil, fmt.Errorf("could not allocate a unique tracking code after %d attempts", maxTrackingCodeAttempts)
}

// FindByID returns the shipment or nil when it does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (*types.ShipmentProjection, error) {
	projection, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// FindByTrackingCode returns the shipment or nil when the code is unknown.
func (s *Service) FindByTrackingCode(ctx context.Context, code string) (*types.ShipmentProjection, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !domain.IsTrackingCode(code) {
		return nil, mapError(domain.ErrInvalidTrackingCode)
	}
	if cached, ok, err := s.cache.Get(ctx, code); err == nil && ok {
		return cached, nil
	}
	projection, err := s.repo.GetByTrackingCode(ctx, code)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.cache.Set(ctx, projection, s.cacheTTL); err == nil {
		s.dropIfStale(ctx, projection)
	}
	return projection, nil
}

// dropIfStale re-reads the row after a cache fill and evicts the entry when a
// write committed in between.
func (s *Service) dropIfStale(ctx context.Context, cached *types.ShipmentProjection) {
	current, err := s.repo.GetByTrackingCode(ctx, cached.Entity.TrackingCode)
	if err == nil && *current.Entity == *cached.Entity && current.Metadata.UpdatedAt.Equal(cached.Metadata.UpdatedAt) {
		return
	}
	_ = s.cache.Invalidate(ctx, cached.Entity.TrackingCode)
}

// List returns every shipment.
func (s *Service) List(ctx context.Context) ([]*types.ShipmentProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update merges patch into the stored shipment. The merge and the transition
// check run atomically; a rejected status change leaves the row untouched.
func (s *Service) Update(ctx context.Context, id int64, patch *types.UpdateShipmentInput) (*types.ShipmentProjection, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if patch == nil {
		return nil, invalidInput("shipment patch is required")
	}
	if patch.ClientID != nil && *patch.ClientID != existing.Entity.ClientID {
		if err := s.ensureClient(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
	}
	var previous domain.Status
	updated, err := s.repo.Update(ctx, id, func(current *domain.Shipment) error {
		previous = current.Status
		if err := s.recheck(ctx, policy.OperationUpdate, current.Status, patch.RequestedStatus()); err != nil {
			return err
		}
		return applyPatch(current, patch)
	})
	if err != nil {
		return nil, mapError(err)
	}
	s.afterMutation(ctx, updated, previous, domain.EventShipmentUpdated)
	return updated, nil
}

// UpdateStatus moves a shipment to status and records optional observations.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status, observations string) (*types.ShipmentProjection, error) {
	if !status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	var previous domain.Status
	updated, err := s.repo.Update(ctx, id, func(current *domain.Shipment) error {
		previous = current.Status
		if err := s.recheck(ctx, policy.OperationChangeStatus, current.Status, status); err != nil {
			return err
		}
		current.Status = status
		if note := strings.TrimSpace(observations); note != "" {
			current.Observations = note
		}
		return current.Validate()
	})
	if err != nil {
		return nil, mapError(err)
	}
	s.afterMutation(ctx, updated, previous, domain.EventShipmentStatusChanged)
	return updated, nil
}

// DeleteByID removes a shipment; it fails with ErrNotFound when the id is unknown.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	var deleted domain.Shipment
	err := s.repo.Delete(ctx, id, func(current *domain.Shipment) error {
		if err := s.recheck(ctx, policy.OperationDelete, current.Status, ""); err != nil {
			return err
		}
		deleted = *current
		return nil
	})
	if err != nil {
		return mapError(err)
	}
	_ = s.cache.Invalidate(ctx, deleted.TrackingCode)
	s.publish(ctx, domain.Event{
		Type:           domain.EventShipmentDeleted,
		ShipmentID:     id,
		TrackingCode:   deleted.TrackingCode,
		PreviousStatus: deleted.Status,
		Status:         deleted.Status,
	})
	return nil
}

// IsShipmentPending reports whether the shipment exists and is PENDING.
func (s *Service) IsShipmentPending(ctx context.Context, id int64) (bool, error) {
	projection, err := s.FindByID(ctx, id)
	if err != nil || projection == nil {
		return false, err
	}
	return projection.Entity.IsPending(), nil
}

// CanDriverUpdateStatus reports whether a driver may move the shipment to proposed.
func (s *Service) CanDriverUpdateStatus(ctx context.Context, id int64, proposed domain.Status) (bool, error) {
	projection, err := s.FindByID(ctx, id)
	if err != nil || projection == nil {
		return false, err
	}
	return policy.IsTransitionAllowed(projection.Entity.Status, proposed, principal.RoleDriver), nil
}

// Count returns the number of stored shipments.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// recheck re-evaluates the gate against the persisted state. Without a
// principal in ctx, status changes are refused and other edits pass.
func (s *Service) recheck(ctx context.Context, op policy.Operation, current, requested domain.Status) error {
	actor, ok := principal.FromContext(ctx)
	if !ok {
		if op == policy.OperationChangeStatus || (requested != "" && requested != current) {
			return forbidden("status changes require an authenticated role")
		}
		return nil
	}
	decision := policy.Authorize(policy.Request{
		Operation: op,
		Role:      actor.Role,
		Current:   &current,
		Requested: requested,
	})
	if !decision.Allowed {
		return forbidden(decision.Reason)
	}
	return nil
}

func (s *Service) ensureClient(ctx context.Context, clientID int64) error {
	if s.clients == nil {
		return errors.New("client lookup not configured")
	}
	exists, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: client %d", ErrNotFound, clientID)
	}
	return nil
}

func (s *Service) afterMutation(ctx context.Context, updated *types.ShipmentProjection, previous domain.Status, eventType domain.EventType) {
	_ = s.cache.Invalidate(ctx, updated.Entity.TrackingCode)
	if previous != updated.Entity.Status {
		eventType = domain.EventShipmentStatusChanged
	}
	s.publish(ctx, domain.Event{
		Type:           eventType,
		ShipmentID:     updated.Entity.ID,
		TrackingCode:   updated.Entity.TrackingCode,
		PreviousStatus: previous,
		Status:         updated.Entity.Status,
		Observations:   updated.Entity.Observations,
	})
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	_ = s.events.Publish(ctx, event)
}

func applyPatch(current *domain.Shipment, patch *types.UpdateShipmentInput) error {
	if patch.ClientID != nil {
		current.ClientID = *patch.ClientID
	}
	if patch.Status != nil {
		current.Status = *patch.Status
	}
	if patch.Priority != nil {
		current.Priority = *patch.Priority
	}
	if patch.Observations != nil {
		current.Observations = strings.TrimSpace(*patch.Observations)
	}
	return current.Validate()
}

var _ ports.Service = (*Service)(nil)
