package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
	"github.com/udea/couriersync/internal/domains/vehicles/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the fleet in PostgreSQL using GORM. The plate column carries a unique index.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type vehicleRecord struct {
	ID              int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Plate           string    `gorm:"column:plate;uniqueIndex"`
	Model           string    `gorm:"column:model"`
	MaximumCapacity float64   `gorm:"column:maximum_capacity"`
	Available       bool      `gorm:"column:available"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

func (r *Repository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	record := toRecord(vehicle)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return r.first(ctx, "plate = ?", plate)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	vehicles := make([]*domain.Vehicle, 0, len(records))
	for i := range records {
		vehicles = append(vehicles, records[i].toDomain())
	}
	return vehicles, nil
}

func (r *Repository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	result := r.db.WithContext(ctx).Model(&vehicleRecord{}).
		Where("id = ?", vehicle.ID).
		Updates(map[string]interface{}{
			"plate":            vehicle.Plate,
			"model":            vehicle.Model,
			"maximum_capacity": vehicle.MaximumCapacity,
			"available":        vehicle.Available,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, vehicle.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&vehicleRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record vehicleRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toDomain(), nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ports.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ports.ErrDuplicatePlate
	}
	return err
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres vehicle repository not configured")
	}
	return nil
}

func toRecord(v *domain.Vehicle) vehicleRecord {
	return vehicleRecord{
		ID:              v.ID,
		Plate:           v.Plate,
		Model:           v.Model,
		MaximumCapacity: v.MaximumCapacity,
		Available:       v.Available,
	}
}

func (r vehicleRecord) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:              r.ID,
		Plate:           r.Plate,
		Model:           r.Model,
		MaximumCapacity: r.MaximumCapacity,
		Available:       r.Available,
	}
}
