package models

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Slug      string    `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"type:timestamptz" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
