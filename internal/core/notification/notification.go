package notification

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Type string

const TypeLike Type = "like"

type Notification struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"               json:"id"`
	FromID    uuid.UUID `gorm:"type:char(36);not null;index"            json:"from"`
	ToID      uuid.UUID `gorm:"type:char(36);not null;index"            json:"to"`
	PostID    string    `gorm:"type:char(36)"                           json:"postId,omitempty"`
	Type      Type      `gorm:"type:varchar(20);not null"               json:"type"`
	Read      bool      `gorm:"column:is_read;not null;default:false"   json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"                    json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// LikeEvent is produced by a like transition (not liked -> liked).
type LikeEvent struct {
	From   string
	To     string
	PostID string
}
