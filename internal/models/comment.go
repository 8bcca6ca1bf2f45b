package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is one discussion entry on a deal. Replies reference their parent
// by id; the tree is assembled in memory from the flat rows.
type Comment struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"type:timestamptz;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DealID   string  `gorm:"type:text;index;not null" json:"deal_id"`
	ParentID *string `gorm:"type:text;index" json:"parent_id,omitempty"`

	Author  string `gorm:"type:text;not null" json:"author"`
	Content string `gorm:"type:text;not null" json:"content"`
	Votes   int    `gorm:"not null;default:0" json:"votes"`
}

func (Comment) TableName() string {
	return "deal_comments"
}
