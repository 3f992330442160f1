package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderUnisex Gender = "UNISEX"
)

func Genders() []string {
	return []string{string(GenderMale), string(GenderFemale), string(GenderUnisex)}
}

type TattooSize string

const (
	SizeSmall        TattooSize = "SMALL"
	SizeMedium       TattooSize = "MEDIUM"
	SizeLarge        TattooSize = "LARGE"
	SizeExtraLarge   TattooSize = "EXTRA_LARGE"
	SizeFullCoverage TattooSize = "FULL_COVERAGE"
)

func TattooSizes() []string {
	return []string{
		string(SizeSmall), string(SizeMedium), string(SizeLarge),
		string(SizeExtraLarge), string(SizeFullCoverage),
	}
}

const (
	MaxTitleLen   = 20
	MaxCaptionLen = 280

	DefaultTitle = "Untitled Upload"
)

// Design is one tattoo image with its derived metadata, owned by a User.
// ImageURL and UserID are immutable once the row exists; IgMediaID and
// IgPermalink are write-once provenance from the source post.
type Design struct {
	ID          string     `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      string     `json:"userId" gorm:"type:char(36);not null;index"`
	ImageURL    string     `json:"imageUrl" gorm:"size:1024;not null"`
	Title       string     `json:"title" gorm:"size:64;not null;default:'Untitled Upload'"`
	Caption     string     `json:"caption" gorm:"size:512"`
	Gender      Gender     `json:"gender" gorm:"size:16;not null;default:'UNISEX'"`
	Size        TattooSize `json:"size" gorm:"size:16;not null;default:'MEDIUM'"`
	BodyPart    string     `json:"bodyPart" gorm:"size:128"`
	Styles      StringList `json:"styles" gorm:"type:json"`
	Themes      StringList `json:"themes" gorm:"type:json"`
	IgMediaID   string     `json:"igMediaId,omitempty" gorm:"size:128"`
	IgPermalink string     `json:"igPermalink,omitempty" gorm:"size:512"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (d *Design) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Truncate caps a free-text field at n characters. All write paths truncate
// rather than reject, so Title and Caption never exceed their caps.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
