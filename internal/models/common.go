// internal/models/common.go
package models

import "time"

// KVRecord backs the postgres storage driver: one row per key, value kept as raw JSON text.
type KVRecord struct {
	Key       string    `json:"key" gorm:"primaryKey;size:191"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
