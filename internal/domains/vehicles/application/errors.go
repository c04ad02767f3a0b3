package application

import (
	"errors"
	"fmt"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
	"github.com/udea/couriersync/internal/domains/vehicles/ports"
)

var (
	ErrInvalidInput = errors.New("invalid vehicle input")
	ErrNotFound     = errors.New("vehicle not found")
	ErrConflict     = errors.New("vehicle conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyPlate), errors.Is(err, domain.ErrNegativeCapacity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, ports.ErrDuplicatePlate):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
