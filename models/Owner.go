package models

import (
	"gorm.io/gorm"
)

// Owner is the person a listing belongs to. ExternalID carries the identifier
// used by the agency's back-office system.
type Owner struct {
	gorm.Model
	ExternalID string    `json:"externalID" gorm:"type:varchar(36);uniqueIndex"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email" gorm:"index"`
	Phone      string    `json:"phone"`
	Listings   []Listing `json:"listings,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
