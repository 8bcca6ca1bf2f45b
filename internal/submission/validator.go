package submission

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Submission is the loosely-typed deal candidate as posted by a client.
// Prices arrive as strings, matching the submit form, and are parsed here.
type Submission struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	OriginalPrice string  `json:"original_price" validate:"required"`
	DealPrice     string  `json:"deal_price" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Store         string  `json:"store" validate:"required"`
	ExpiresIn     string  `json:"expires_in" validate:"required"`
	Discount      *int    `json:"discount,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	StoreImage    string  `json:"store_image,omitempty"`
	PostedBy      string  `json:"posted_by,omitempty"`
	CouponCode    *string `json:"coupon_code,omitempty"`
	FreeShipping  bool    `json:"free_shipping,omitempty"`
	IsHot         bool    `json:"is_hot,omitempty"`
	IsVerified    bool    `json:"is_verified,omitempty"`

	// An explicitly supplied score/rating is kept as-is; it is never
	// recomputed downstream.
	DealScore  *float64 `json:"deal_score,omitempty"`
	DealRating *string  `json:"deal_rating,omitempty"`
}

// Candidate is a validated submission with prices parsed, the discount
// derived and the slug generated. Identity, votes, comment count, score and
// rating are assigned by the repository collaborator, not here.
type Candidate struct {
	Title         string
	Description   string
	OriginalPrice decimal.Decimal
	DealPrice     decimal.Decimal
	Discount      int
	Slug          string
	Category      string
	Store         string
	StoreImage    string
	ImageURL      string
	PostedBy      string
	ExpiresIn     string
	CouponCode    *string
	FreeShipping  bool
	IsHot         bool
	IsVerified    bool
	DealScore     *float64
	DealRating    *string
}

// ValidationError carries one message per invalid field so callers can
// surface every violation at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %d invalid field(s)", len(e.Fields))
}

// Validator gates deal creation.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

var requiredMessages = map[string]string{
	"title":          "Title is required",
	"description":    "Description is required",
	"original_price": "Original price is required",
	"deal_price":     "Deal price is required",
	"category":       "Category is required",
	"store":          "Store name is required",
	"expires_in":     "Expiration is required",
}

// Validate checks a submission and, when clean, returns the fully-formed
// candidate. All violations are reported together in a *ValidationError.
func (v *Validator) Validate(sub Submission) (*Candidate, error) {
	fields := map[string]string{}

	sub.Title = strings.TrimSpace(sub.Title)
	sub.Description = strings.TrimSpace(sub.Description)
	sub.OriginalPrice = strings.TrimSpace(sub.OriginalPrice)
	sub.DealPrice = strings.TrimSpace(sub.DealPrice)
	sub.Category = strings.TrimSpace(sub.Category)
	sub.Store = strings.TrimSpace(sub.Store)
	sub.ExpiresIn = strings.TrimSpace(sub.ExpiresIn)

	if err := v.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			msg, ok := requiredMessages[fe.Field()]
			if !ok {
				msg = fe.Field() + " is invalid"
			}
			fields[fe.Field()] = msg
		}
	}

	var originalPrice, dealPrice decimal.Decimal
	if sub.OriginalPrice != "" {
		p, err := decimal.NewFromString(sub.OriginalPrice)
		switch {
		case err != nil:
			fields["original_price"] = "Must be a valid number"
		case !p.IsPositive():
			fields["original_price"] = "Must be greater than 0"
		default:
			originalPrice = p
		}
	}
	if sub.DealPrice != "" {
		p, err := decimal.NewFromString(sub.DealPrice)
		switch {
		case err != nil:
			fields["deal_price"] = "Must be a valid number"
		case !p.IsPositive():
			fields["deal_price"] = "Must be greater than 0"
		default:
			dealPrice = p
		}
	}
	if _, bad := fields["original_price"]; !bad {
		if _, bad := fields["deal_price"]; !bad && !originalPrice.IsZero() && !dealPrice.IsZero() {
			if dealPrice.GreaterThanOrEqual(originalPrice) {
				fields["deal_price"] = "Must be less than original price"
			}
		}
	}
	if sub.Discount != nil && (*sub.Discount < 0 || *sub.Discount > 100) {
		fields["discount"] = "Must be between 0 and 100"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	discount := deriveDiscount(originalPrice, dealPrice)
	if sub.Discount != nil {
		discount = *sub.Discount
	}

	return &Candidate{
		Title:         sub.Title,
		Description:   sub.Description,
		OriginalPrice: originalPrice,
		DealPrice:     dealPrice,
		Discount:      discount,
		Slug:          Slugify(sub.Title),
		Category:      sub.Category,
		Store:         sub.Store,
		StoreImage:    sub.StoreImage,
		ImageURL:      sub.ImageURL,
		PostedBy:      sub.PostedBy,
		ExpiresIn:     sub.ExpiresIn,
		CouponCode:    sub.CouponCode,
		FreeShipping:  sub.FreeShipping,
		IsHot:         sub.IsHot,
		IsVerified:    sub.IsVerified,
		DealScore:     sub.DealScore,
		DealRating:    sub.DealRating,
	}, nil
}

// deriveDiscount computes round((orig-deal)/orig*100).
func deriveDiscount(originalPrice, dealPrice decimal.Decimal) int {
	return int(originalPrice.Sub(dealPrice).
		Div(originalPrice).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart())
}

var (
	nonWordRE    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, strip non-word
// characters, collapse whitespace runs to single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWordRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, "-")
	return s
}
