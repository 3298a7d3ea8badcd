package models

import "time"

// KVRecord backs the key-value store when the postgres driver is selected.
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
