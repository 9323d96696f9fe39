package follower

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Follower یک رابطه‌ی دنبال کردن؛ FollowerID کاربر UserID را دنبال می‌کند
type Follower struct {
	ID         uuid.UUID  `gorm:"primary_key;type:char(36)"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index;uniqueIndex:uniq_follow"`
	FollowerID uuid.UUID  `gorm:"type:char(36);not null;index;uniqueIndex:uniq_follow"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	DeletedAt  *time.Time `gorm:"index"`
}

func (f *Follower) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
