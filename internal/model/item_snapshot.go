package model

import "time"

// ItemSnapshot is the postgres row holding a whole item collection under one slot name.
type ItemSnapshot struct {
	Slot      string `gorm:"primaryKey"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of GORM's pluralization.
func (ItemSnapshot) TableName() string { return "item_snapshots" }
