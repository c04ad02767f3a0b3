package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shipments in PostgreSQL using GORM. Update and Delete lock
// the row with SELECT ... FOR UPDATE inside a transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// shipmentRecord maps the shipment aggregate to a relational table.
type shipmentRecord struct {
	ID           int64     `gorm:"primaryKey;column:id;autoIncrement"`
	TrackingCode string    `gorm:"column:tracking_code;type:varchar(16);uniqueIndex"`
	ClientID     int64     `gorm:"column:client_id;index"`
	Status       string    `gorm:"column:status;type:varchar(32);index"`
	Priority     string    `gorm:"column:priority;type:varchar(16)"`
	Observations string    `gorm:"column:observations;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }

// Create inserts a new shipment. The tracking code must already be assigned.
func (r *Repository) Create(ctx context.Context, shipment *domain.Shipment) (*types.ShipmentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	if shipment.TrackingCode == "" {
		return nil, domain.ErrInvalidTrackingCode
	}
	record := toRecord(shipment)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateTrackingCode
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// GetByID fetches a shipment by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.ShipmentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return record.toProjection(), nil
}

// GetByTrackingCode fetches a shipment by its public code.
func (r *Repository) GetByTrackingCode(ctx context.Context, code string) (*types.ShipmentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "tracking_code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return record.toProjection(), nil
}

// List returns all shipments ordered by id.
func (r *Repository) List(ctx context.Context) ([]*types.ShipmentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*types.ShipmentProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

// Update locks the row, applies mutate to a detached copy and writes it back.
func (r *Repository) Update(ctx context.Context, id int64, mutate ports.MutateFunc) (*types.ShipmentProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if mutate == nil {
		return nil, errors.New("mutate func is nil")
	}
	var updated shipmentRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRow(tx, id)
		if err != nil {
			return err
		}
		working := current.toDomain()
		if err := mutate(working); err != nil {
			return err
		}
		if working.TrackingCode != current.TrackingCode {
			return domain.ErrTrackingCodeLocked
		}
		working.ID = id
		if err := working.Validate(); err != nil {
			return err
		}
		next := toRecord(working)
		if err := tx.Model(&shipmentRecord{}).Where("id = ?", id).Updates(map[string]any{
			"client_id":    next.ClientID,
			"status":       next.Status,
			"priority":     next.Priority,
			"observations": next.Observations,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error; err != nil {
			return err
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated.toProjection(), nil
}

// Delete locks the row, runs guard and removes it.
func (r *Repository) Delete(ctx context.Context, id int64, guard ports.GuardFunc) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRow(tx, id)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(current.toDomain()); err != nil {
				return err
			}
		}
		result := tx.Delete(&shipmentRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// Count returns the number of shipments.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&shipmentRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func lockRow(tx *gorm.DB, id int64) (*shipmentRecord, error) {
	var record shipmentRecord
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shipment repository not configured")
	}
	return nil
}

func toRecord(shipment *domain.Shipment) shipmentRecord {
	return shipmentRecord{
		ID:           shipment.ID,
		TrackingCode: shipment.TrackingCode,
		ClientID:     shipment.ClientID,
		Status:       string(shipment.Status),
		Priority:     string(shipment.Priority),
		Observations: shipment.Observations,
	}
}

func (r shipmentRecord) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:           r.ID,
		TrackingCode: r.TrackingCode,
		ClientID:     r.ClientID,
		Status:       domain.Status(r.Status),
		Priority:     domain.Priority(r.Priority),
		Observations: r.Observations,
	}
}

func (r shipmentRecord) toProjection() *types.ShipmentProjection {
	return types.NewShipmentProjection(r.toDomain(), r.CreatedAt, r.UpdatedAt)
}
