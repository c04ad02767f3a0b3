//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	userssecurity "github.com/udea/couriersync/internal/domains/users/adapters/security"
	"github.com/udea/couriersync/internal/shared/principal"
)

const (
	ProviderName = "couriersync-api"
	ConsumerName = "courier-portal"

	StateShipmentExists  = "a pending shipment with id 1 exists"
	StateShipmentMissing = "no shipment with id 404"
	StateOperatorAccount = "an operator account exists"
)

const (
	ExistingShipmentID int64 = 1
	MissingShipmentID  int64 = 404
	ExistingClientID   int64 = 1

	ExampleTrackingCode = "CSPACT001"
	OperatorEmail       = "operator@courier.pact"
	OperatorPassword    = "pact-pass"
	TokenIssuer         = "couriersync-pact"
)

// TokenTTL outlives the gap between the consumer run that records tokens and provider verification.
const TokenTTL = 30 * 24 * time.Hour

// SigningSecret is shared by the consumer, which mints tokens, and the provider, which verifies them.
var SigningSecret = []byte("pact-signing-secret-0123456789abcdef")

// NewTokenIssuer returns the issuer both sides of the contract agree on.
func NewTokenIssuer(t testing.TB) *userssecurity.JWTIssuer {
	t.Helper()
	issuer, err := userssecurity.NewJWTIssuer(SigningSecret, TokenIssuer, TokenTTL)
	if err != nil {
		t.Fatalf("build token issuer: %v", err)
	}
	return issuer
}

// BearerFor mints an Authorization header value for role.
func BearerFor(t testing.TB, role principal.Role) string {
	t.Helper()
	token, _, err := NewTokenIssuer(t).Issue(principal.Principal{UserID: 1, Email: "pact@" + string(role), Role: role})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the courier portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleShipmentPayload provides stable test data for pact interactions.
func ExampleShipmentPayload() map[string]any {
	return map[string]any{
		"id":           ExistingShipmentID,
		"trackingCode": ExampleTrackingCode,
		"clientId":     ExistingClientID,
		"status":       "PENDING",
		"priority":     "HIGH",
		"observations": "fragile",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
