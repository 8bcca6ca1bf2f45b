package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rating is the discrete quality tier bucketed from DealScore.
type Rating string

const (
	RatingEpic    Rating = "epic"
	RatingGood    Rating = "good"
	RatingAverage Rating = "average"
	RatingPoor    Rating = "poor"
)

type Deal struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `gorm:"type:timestamptz;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	OriginalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"original_price"`
	DealPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deal_price"`
	Discount      int             `gorm:"not null" json:"discount"`

	CategoryID string   `gorm:"type:text;index;not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`

	Store      string `gorm:"type:text;not null" json:"store"`
	StoreImage string `gorm:"type:text" json:"store_image"`
	ImageURL   string `gorm:"type:text" json:"image_url"`

	PostedBy   string `gorm:"type:text" json:"posted_by"`
	PostedTime string `gorm:"type:text" json:"posted_time"`
	ExpiresIn  string `gorm:"type:text;not null" json:"expires_in"`

	CouponCode   *string `gorm:"type:text" json:"coupon_code,omitempty"`
	FreeShipping bool    `gorm:"not null;default:false" json:"free_shipping"`

	Votes    int `gorm:"not null;default:0" json:"votes"`
	Comments int `gorm:"not null;default:0" json:"comments"`

	IsHot      bool `gorm:"not null;default:false;index" json:"is_hot"`
	IsVerified bool `gorm:"not null;default:false;index" json:"is_verified"`

	DealScore  float64 `gorm:"not null;default:0" json:"deal_score"`
	DealRating Rating  `gorm:"type:text;not null;default:'poor'" json:"deal_rating"`
}

func (Deal) TableName() string {
	return "deals"
}
