package models

import (
	"gorm.io/gorm"
)

// Pricing purposes. A listing carries at most one entry per purpose by
// convention; each entry is priced independently.
const (
	PurposeSale      = "sale"
	PurposeRental    = "rental"
	PurposeShortStay = "short_stay"
)

// PriceEntry is a purpose-specific price attached to a listing. The stay
// fields are only meaningful when Purpose is short_stay, in which case Value
// is the nightly rate.
type PriceEntry struct {
	gorm.Model
	ListingID uint    `json:"listingID" gorm:"index"`
	Purpose   string  `json:"purpose" gorm:"type:varchar(20);index"` // sale, rental, short_stay
	Value     float64 `json:"value"`

	MinStayNights int     `json:"minStayNights"`
	CleaningFee   float64 `json:"cleaningFee"`
	GuestCapacity int     `json:"guestCapacity"`
}
