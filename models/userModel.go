package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	MembershipIndividual = "individual"
	MembershipCorporate  = "corporate"
)

type User struct {
	gorm.Model
	FirstName           string     `json:"firstName" binding:"required"`
	LastName            string     `json:"lastName" binding:"required"`
	Email               string     `json:"email" gorm:"size:255;uniqueIndex" binding:"required,email"`
	Phone               string     `json:"phone" gorm:"size:20"`
	Password            string     `json:"password,omitempty" gorm:"size:255"`
	MembershipType      string     `json:"membershipType" gorm:"size:20;default:individual"`
	CompanyName         string     `json:"companyName" gorm:"size:255"`
	TaxNumber           string     `json:"taxNumber" gorm:"size:20"`
	TaxOffice           string     `json:"taxOffice" gorm:"size:100"`
	Role                string     `json:"role" gorm:"size:20;default:customer"`
	Active              bool       `json:"active" gorm:"default:true"`
	EmailVerified       bool       `json:"emailVerified" gorm:"default:false"`
	VerificationToken   string     `json:"-" gorm:"size:100"`
	PasswordResetToken  string     `json:"-" gorm:"size:100"`
	PasswordResetExpiry *time.Time `json:"-"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

// FullName is used in order confirmations and gateway buyer payloads.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Address struct {
	gorm.Model
	UserID      uint   `json:"userId"`
	Title       string `json:"title" gorm:"size:100" binding:"required"`
	FullName    string `json:"fullName" gorm:"size:200" binding:"required"`
	Phone       string `json:"phone" gorm:"size:20" binding:"required"`
	City        string `json:"city" gorm:"size:50" binding:"required"`
	District    string `json:"district" gorm:"size:50" binding:"required"`
	AddressText string `json:"addressText" gorm:"type:text" binding:"required"`
	PostalCode  string `json:"postalCode" gorm:"size:10"`
	Default     bool   `json:"default" gorm:"default:false"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
