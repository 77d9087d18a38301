package models

import (
	"time"

	"gorm.io/gorm"
)

type DonationType string

const (
	DonationTypePhysical  DonationType = "Physical"
	DonationTypeFinancial DonationType = "Financial"
	DonationTypeService   DonationType = "Service"
)

type DonationStatus string

const (
	DonationStatusPending     DonationStatus = "Pending"
	DonationStatusApproved    DonationStatus = "Approved"
	DonationStatusCollected   DonationStatus = "Collected"
	DonationStatusInTransit   DonationStatus = "InTransit"
	DonationStatusDistributed DonationStatus = "Distributed"
	DonationStatusRejected    DonationStatus = "Rejected"
)

// IsValid reports whether the value is a known donation status.
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationStatusPending, DonationStatusApproved, DonationStatusCollected,
		DonationStatusInTransit, DonationStatusDistributed, DonationStatusRejected:
		return true
	}
	return false
}

type DonationCategory struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:varchar(300)" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donations []Donation `gorm:"foreignKey:CategoryID" json:"-"`
}

type Donation struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	ItemName             string         `gorm:"type:varchar(100);not null" json:"item_name"`
	Description          string         `gorm:"type:varchar(500)" json:"description"`
	Quantity             int            `gorm:"not null" json:"quantity"`
	Unit                 string         `gorm:"type:varchar(30);not null" json:"unit"`
	EstimatedValue       *float64       `json:"estimated_value"`
	Type                 DonationType   `gorm:"type:varchar(20);not null" json:"type"`
	CategoryID           uint64         `gorm:"not null;index" json:"category_id"`
	DonorID              uint64         `gorm:"not null;index" json:"donor_id"`
	DonationDate         time.Time      `gorm:"not null" json:"donation_date"`
	Status               DonationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	PickupLocation       string         `gorm:"type:varchar(200)" json:"pickup_location"`
	PickupDate           *time.Time     `json:"pickup_date"`
	DistributionLocation string         `gorm:"type:varchar(200)" json:"distribution_location"`
	DistributionDate     *time.Time     `json:"distribution_date"`
	Notes                string         `gorm:"type:varchar(500)" json:"notes"`
	IsUrgent             bool           `gorm:"not null;default:false" json:"is_urgent"`
	ExpiryDate           *time.Time     `json:"expiry_date"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donor    User             `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Category DonationCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
