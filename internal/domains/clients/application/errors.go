package application

import (
	"errors"
	"fmt"

	"github.com/udea/couriersync/internal/domains/clients/domain"
	"github.com/udea/couriersync/internal/domains/clients/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid client input")
	// ErrNotFound signals the client does not exist.
	ErrNotFound = errors.New("client not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
