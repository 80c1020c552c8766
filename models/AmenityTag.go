package models

import (
	"gorm.io/gorm"
)

// AmenityTag is a condominium amenity (pool, gym, ...). Icon is the CSS icon
// class rendered by the filter UI.
type AmenityTag struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`
	Icon string `json:"icon"`
}
