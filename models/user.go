package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Username   string    `json:"username" gorm:"size:255;not null;uniqueIndex"`
	ProfileURL string    `json:"profileUrl,omitempty" gorm:"size:512"`
	Password   string    `json:"-" gorm:"size:255;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Designs []Design `json:"designs,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
