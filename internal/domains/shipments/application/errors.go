package application

import (
	"errors"
	"fmt"

	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

var (
	// ErrInvalidInput signals a missing or malformed payload.
	ErrInvalidInput = errors.New("invalid shipment input")
	// ErrNotFound signals that a referenced shipment or client does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden signals that the acting role may not perform the operation in the current state.
	ErrForbidden = errors.New("operation not permitted")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidClientID) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPriority) ||
		errors.Is(err, domain.ErrInvalidTrackingCode) ||
		errors.Is(err, domain.ErrTrackingCodeLocked) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
