package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyPlate       = errors.New("vehicle plate is required")
	ErrNegativeCapacity = errors.New("vehicle maximum capacity must not be negative")
)

// Vehicle is a unit of the delivery fleet.
type Vehicle struct {
	ID              int64
	Plate           string
	Model           string
	MaximumCapacity float64
	Available       bool
}

// NormalizePlate upper-cases and trims a plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Validate normalizes the plate and model and enforces invariants.
func (v *Vehicle) Validate() error {
	v.Plate = NormalizePlate(v.Plate)
	v.Model = strings.TrimSpace(v.Model)
	if v.Plate == "" {
		return ErrEmptyPlate
	}
	if v.MaximumCapacity < 0 {
		return ErrNegativeCapacity
	}
	return nil
}

func (v *Vehicle) Clone() *Vehicle {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
