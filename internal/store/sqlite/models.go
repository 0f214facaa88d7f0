package sqlite

import "time"

// SightingModel is the persistence shape of a sighting record. Dates are
// stored at midnight UTC so range filters compare whole days.
type SightingModel struct {
	ID        string    `gorm:"primaryKey"`
	Date      time.Time `gorm:"not null;index"`
	Location  string    `gorm:"not null;index"`
	Species   string    `gorm:"not null;index"`
	LatinName string
	Habitat   string
	Host      string
	CreatedAt time.Time
}

func (SightingModel) TableName() string { return "sightings" }
