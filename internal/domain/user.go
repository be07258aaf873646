package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "Admin"
	UserRoleAgent  UserRole = "Agent"
	UserRoleClient UserRole = "Client"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleAgent, UserRoleClient:
		return true
	}
	return false
}

type ContractType string

const (
	ContractAuto   ContractType = "Assurance Auto"
	ContractHome   ContractType = "Assurance Domicile"
	ContractHealth ContractType = "Assurance Santé"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractAuto, ContractHome, ContractHealth:
		return true
	}
	return false
}

type User struct {
	ID              string       `json:"id" gorm:"primaryKey"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	Email           string       `json:"email" gorm:"uniqueIndex"`
	Phone           string       `json:"phone,omitempty" gorm:"index"`
	Password        string       `json:"-"` // Hashed password
	Role            UserRole     `json:"role" gorm:"index"`
	ContractType    ContractType `json:"contract_type,omitempty"`
	Status          string       `json:"status"` // Active, Inactive, Blocked
	City            string       `json:"city,omitempty"`
	Birthdate       *time.Time   `json:"birthdate,omitempty"`
	InscriptionDate time.Time    `json:"inscription_date"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Password-reset state. The token column holds a SHA-256 digest of the
	// emailed token or of the 6-digit SMS code, never the raw secret.
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
}

// Recipient is the projection of a user returned by recipient resolution.
// Only the fields needed to address a message are carried.
type Recipient struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
