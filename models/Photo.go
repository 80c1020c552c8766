package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Photo belongs to exactly one listing. DisplayOrder is a secondary sort key
// and unique per listing only by convention. Variants holds the rendition
// keys written by the external image pipeline (e.g. thumb/medium URLs).
type Photo struct {
	gorm.Model
	ListingID    uint           `json:"listingID" gorm:"index"`
	ImageURL     string         `json:"imageURL"`
	Caption      string         `json:"caption"`
	IsCover      bool           `json:"isCover"`
	DisplayOrder int            `json:"displayOrder"`
	Variants     datatypes.JSON `json:"variants" gorm:"type:jsonb"`
}
