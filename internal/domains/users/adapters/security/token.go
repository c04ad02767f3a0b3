package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"

	"github.com/udea/couriersync/internal/domains/users/ports"
	"github.com/udea/couriersync/internal/shared/principal"
)

// MinSecretLength is the shortest HS256 secret accepted.
const MinSecretLength = 32

// ErrWeakSecret is returned when the signing secret is too short.
var ErrWeakSecret = errors.New("token secret must be at least 32 bytes")

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type accessClaims struct {
	jwt.Claims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTIssuer signs HS256 access tokens carrying the caller's id, email and role.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	signer jose.Signer
	now    func() time.Time
}

func NewJWTIssuer(secret []byte, issuer string, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("create token signer: %w", err)
	}
	return &JWTIssuer{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		signer: signer,
		now:    time.Now,
	}, nil
}

func (i *JWTIssuer) Issue(p principal.Principal) (string, time.Time, error) {
	if !p.Role.Valid() {
		return "", time.Time{}, principal.ErrUnknownRole
	}
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)
	claims := accessClaims{
		Claims: jwt.Claims{
			ID:       uuid.NewString(),
			Issuer:   i.issuer,
			Subject:  strconv.FormatInt(p.UserID, 10),
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(expiresAt),
		},
		Email: p.Email,
		Role:  p.Role.String(),
	}
	token, err := jwt.Signed(i.signer).Claims(claims).Serialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks the signature, issuer and expiry and rejects tokens whose role is unknown.
func (i *JWTIssuer) Verify(token string) (principal.Principal, error) {
	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	var claims accessClaims
	if err := parsed.Claims(i.secret, &claims); err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	if err := claims.ValidateWithLeeway(jwt.Expected{Issuer: i.issuer, Time: i.now()}, 0); err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	role, err := principal.ParseRole(claims.Role)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: bad subject", ports.ErrInvalidToken)
	}
	return principal.Principal{UserID: userID, Email: claims.Email, Role: role}, nil
}
