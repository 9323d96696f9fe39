package post

import "time"

// Comment is owned by its parent Post and has no lifecycle of its own.
type Comment struct {
	ID        string    `bson:"_id"        json:"id"`
	UserID    string    `bson:"user_id"    json:"userId"`
	Text      string    `bson:"text"       json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Post یک سند در کالکشن posts؛ کامنت‌ها و لایک‌ها داخل همین سند نگهداری می‌شوند
type Post struct {
	ID        string    `bson:"_id"            json:"id"`
	UserID    string    `bson:"user_id"        json:"userId"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	Image     string    `bson:"img,omitempty"  json:"img,omitempty"`
	Comments  []Comment `bson:"comments"       json:"comments"`
	Likes     []string  `bson:"likes"          json:"likes"`
	CreatedAt time.Time `bson:"created_at"     json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at"     json:"updatedAt"`
}

// LikedBy reports whether userID is in the post's likers set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
