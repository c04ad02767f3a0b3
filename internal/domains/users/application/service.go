package application

import (
	"context"
	"errors"
	"strings"

	"github.com/udea/couriersync/internal/domains/users/application/types"
	"github.com/udea/couriersync/internal/domains/users/domain"
	"github.com/udea/couriersync/internal/domains/users/ports"
	"github.com/udea/couriersync/internal/shared/principal"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo    ports.Repository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
}

type Option func(*Service)

// WithLoginLimiter throttles Login per email.
func WithLoginLimiter(limiter ports.LoginLimiter) Option {
	return func(s *Service) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

func NewService(repo ports.Repository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		limiter: ports.NoopLoginLimiter,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create hashes the password and stores a new account.
func (s *Service) Create(ctx context.Context, input types.CreateUserInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	hash, err := s.hasher.Hash(strings.TrimSpace(input.Password))
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         input.Role,
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	return created, mapError(err)
}

// FindByID returns nil when the user does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return emptyWhenMissing(s.repo.GetByID(ctx, id))
}

// FindByEmail returns nil when no account uses email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return emptyWhenMissing(s.repo.GetByEmail(ctx, domain.NormalizeEmail(email)))
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	return users, mapError(err)
}

// Update replaces the profile of id. The stored hash is kept when input.Password is blank.
func (s *Service) Update(ctx context.Context, id int64, input types.UpdateUserInput) (*domain.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	updated := &domain.User{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: existing.PasswordHash,
		Phone:        input.Phone,
		Role:         input.Role,
	}
	if strings.TrimSpace(input.Password) != "" {
		if err := domain.ValidatePassword(input.Password); err != nil {
			return nil, mapError(err)
		}
		hash, err := s.hasher.Hash(strings.TrimSpace(input.Password))
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	result, err := s.repo.Update(ctx, updated)
	return result, mapError(err)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return mapError(s.repo.Delete(ctx, id))
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Login checks credentials and issues an access token.
// Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*types.AccessToken, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	key := "login:" + email
	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, strings.TrimSpace(password)); err != nil {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	token, expiresAt, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return nil, err
	}
	_ = s.limiter.Reset(ctx, key)
	return &types.AccessToken{Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyToken resolves an access token into the principal it was issued for.
func (s *Service) VerifyToken(_ context.Context, token string) (principal.Principal, error) {
	p, err := s.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return principal.Principal{}, mapError(err)
	}
	return p, nil
}

var _ ports.Service = (*Service)(nil)

func emptyWhenMissing(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return u, mapError(err)
}
