package user

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Name      string     `gorm:"not null"`
	Family    string     `gorm:"not null"`
	Username  string     `gorm:"unique;not null"`
	Mobile    string     `gorm:"unique;not null"`
	Password  string     `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// BeforeCreate شناسه را در صورت خالی بودن مقداردهی می‌کند
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// LikedPost is the user-side mirror of a like. The post document's likes
// array is the source of truth; this table is a secondary index.
type LikedPost struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PostID    string    `gorm:"primaryKey;type:char(36)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
