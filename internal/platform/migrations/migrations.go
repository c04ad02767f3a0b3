package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for every bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&clientRecord{},
		&vehicleRecord{},
		&userRecord{},
		&shipmentRecord{},
	)
}

// Client schema mirrors the clients Postgres adapter.
type clientRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(120)"`
	Email     string    `gorm:"column:email;type:varchar(160);index"`
	Phone     string    `gorm:"column:phone;type:varchar(32)"`
	Address   string    `gorm:"column:address;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

// Vehicle schema mirrors the vehicles Postgres adapter.
type vehicleRecord struct {
	ID              int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Plate           string    `gorm:"column:plate;type:varchar(16);uniqueIndex"`
	Model           string    `gorm:"column:model;type:varchar(120)"`
	MaximumCapacity float64   `gorm:"column:maximum_capacity"`
	Available       bool      `gorm:"column:available;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Name         string    `gorm:"column:name;type:varchar(120)"`
	Email        string    `gorm:"column:email;type:varchar(160);uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Phone        string    `gorm:"column:phone;type:varchar(32)"`
	Role         string    `gorm:"column:role;type:varchar(16);index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Shipment schema mirrors the shipments Postgres adapter.
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
