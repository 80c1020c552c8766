package models

import (
	"gorm.io/gorm"
)

// Listing lifecycle statuses. Transitions are driven by the admin surface;
// only active listings are ever exposed to the public search.
const (
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusRented   = "rented"
	ListingStatusReserved = "reserved"
	ListingStatusInactive = "inactive"
)

// Property types accepted for a listing.
const (
	PropertyTypeHouse      = "house"
	PropertyTypeApartment  = "apartment"
	PropertyTypeCommercial = "commercial"
	PropertyTypeLand       = "land"
)

// Furnished states.
const (
	FurnishedFull = "furnished"
	FurnishedSemi = "semi_furnished"
	FurnishedNone = "unfurnished"
)

type Listing struct {
	gorm.Model
	OwnerID      uint   `json:"ownerID"`
	Title        string `json:"title"`
	Description  string `json:"description" gorm:"type:text"`
	PropertyType string `json:"propertyType" gorm:"type:varchar(20);index"` // house, apartment, commercial, land
	Status       string `json:"status" gorm:"type:varchar(20);default:'active';index"`

	// Location
	Address    string  `json:"address"`
	District   string  `json:"district" gorm:"index"`
	City       string  `json:"city" gorm:"index"`
	State      string  `json:"state" gorm:"type:varchar(2)"`
	PostalCode string  `json:"postalCode" gorm:"type:varchar(10)"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`

	// Physical attributes
	UsableArea       float64 `json:"usableArea"`
	TotalArea        float64 `json:"totalArea"`
	Rooms            int     `json:"rooms"`
	Suites           int     `json:"suites"`
	Bathrooms        int     `json:"bathrooms"`
	ParkingSpaces    int     `json:"parkingSpaces"`
	Floor            int     `json:"floor"`
	ConstructionYear int     `json:"constructionYear"`

	// Flags and monthly charges
	FurnishedState   string  `json:"furnishedState" gorm:"type:varchar(20)"` // furnished, semi_furnished, unfurnished
	PetFriendly      bool    `json:"petFriendly"`
	AcceptsFinancing bool    `json:"acceptsFinancing"`
	CondoFee         float64 `json:"condoFee"`
	PropertyTax      float64 `json:"propertyTax"`

	Owner     Owner        `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	Prices    []PriceEntry `json:"prices" gorm:"foreignKey:ListingID"`
	Photos    []Photo      `json:"photos" gorm:"foreignKey:ListingID"`
	Amenities []AmenityTag `json:"amenities" gorm:"many2many:listing_amenities"`
}

// CoverPhoto returns the photo flagged as cover, or the first one by display
// order when no cover is flagged. Nil when the listing has no photos.
func (l *Listing) CoverPhoto() *Photo {
	var first *Photo
	for i := range l.Photos {
		p := &l.Photos[i]
		if p.IsCover {
			return p
		}
		if first == nil || p.DisplayOrder < first.DisplayOrder {
			first = p
		}
	}
	return first
}

// PriceFor returns the price entry for the given purpose, nil when absent.
func (l *Listing) PriceFor(purpose string) *PriceEntry {
	for i := range l.Prices {
		if l.Prices[i].Purpose == purpose {
			return &l.Prices[i]
		}
	}
	return nil
}
