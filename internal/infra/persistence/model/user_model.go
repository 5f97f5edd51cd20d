// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:text;not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `gorm:"type:varchar(60);not null"`
	FirstName    string    `gorm:"type:text;not null;default:''"`
	LastName     string    `gorm:"type:text;not null;default:''"`
	Description  string    `gorm:"type:text;not null;default:''"`
	Image        string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered UUIDv7 so ids sort by creation.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}
