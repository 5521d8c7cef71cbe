package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	StatusActive    CampaignStatus = "active"
	StatusCompleted CampaignStatus = "completed"
	StatusCancelled CampaignStatus = "cancelled"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Category struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Campaign.CurrentAmount always equals the sum of the campaign's donations.
// Only the ledger moves it, inside the donation transaction.
type Campaign struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"size:100;not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_amount"`
	Deadline      time.Time       `gorm:"not null;index" json:"deadline"`
	Status        CampaignStatus  `gorm:"size:16;not null;default:active;index" json:"status"`
	UserID        uint64          `gorm:"index;not null" json:"user_id"`
	User          *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"owner,omitempty"`
	CategoryID    uint64          `gorm:"index;not null" json:"category_id"`
	Category      *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Donation rows are never updated or deleted.
type Donation struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Message    *string         `gorm:"size:255" json:"message,omitempty"`
	DonatedAt  time.Time       `gorm:"not null;index" json:"donated_at"`
	UserID     uint64          `gorm:"index;not null" json:"user_id"`
	User       *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"donor,omitempty"`
	CampaignID uint64          `gorm:"index;not null" json:"campaign_id"`
	Campaign   *Campaign       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"campaign,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Comment struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	UserID     uint64    `gorm:"index;not null" json:"user_id"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
	CampaignID uint64    `gorm:"index;not null" json:"campaign_id"`
	Campaign   *Campaign `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"campaign,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// All lists the models in foreign-key order for AutoMigrate.
func All() []any {
	return []any{&User{}, &Category{}, &Campaign{}, &Donation{}, &Comment{}}
}
