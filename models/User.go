package models

import (
	"gorm.io/gorm"
)

// User is a back-office account for the admin JSON API. Public visitors are
// anonymous; there is no self-service registration.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"type:varchar(20);default:'admin';index"` // admin, super_admin
}
