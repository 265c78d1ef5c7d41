package model

import (
	"time"

	"github.com/google/uuid"
)

type MembershipFee struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MembershipType string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Amount         float64   `gorm:"type:numeric(10,2);not null"`
	Currency       string    `gorm:"type:varchar(10);not null;default:'LKR'"`
	ValidityMonths int       `gorm:"not null;default:12"`
	Description    string    `gorm:"type:text"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (MembershipFee) TableName() string {
	return "membership_fees"
}
