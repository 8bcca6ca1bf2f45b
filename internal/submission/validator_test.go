package submission

import (
	"errors"
	"testing"
)

func validSubmission() Submission {
	return Submission{
		Title:         "Neural Headset Pro - 50% Off!",
		Description:   "Immersive neural interface, latest revision.",
		OriginalPrice: "399.99",
		DealPrice:     "199.99",
		Category:      "electronics",
		Store:         "TechMart",
		ExpiresIn:     "2 days",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr.Fields
}

func TestValidateSuccess(t *testing.T) {
	cand, err := New().Validate(validSubmission())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cand.Discount != 50 {
		t.Fatalf("discount = %d, want 50", cand.Discount)
	}
	if cand.Slug != "neural-headset-pro-50-off" {
		t.Fatalf("slug = %q", cand.Slug)
	}
	if cand.DealPrice.String() != "199.99" || cand.OriginalPrice.String() != "399.99" {
		t.Fatalf("prices = %s / %s", cand.DealPrice, cand.OriginalPrice)
	}
}

func TestValidateCollectsAllMissingFields(t *testing.T) {
	_, err := New().Validate(Submission{})
	fields := fieldsOf(t, err)
	for _, key := range []string{"title", "description", "original_price", "deal_price", "category", "store", "expires_in"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing violation for %q in %v", key, fields)
		}
	}
}

func TestValidateRejectsDealPriceAboveOriginal(t *testing.T) {
	sub := validSubmission()
	sub.DealPrice = "399.99"
	_, err := New().Validate(sub)
	fields := fieldsOf(t, err)
	if len(fields) != 1 {
		t.Fatalf("expected only deal_price violation, got %v", fields)
	}
	if fields["deal_price"] != "Must be less than original price" {
		t.Fatalf("deal_price message = %q", fields["deal_price"])
	}
}

func TestValidateRejectsNonNumericAndNonPositivePrices(t *testing.T) {
	sub := validSubmission()
	sub.OriginalPrice = "abc"
	sub.DealPrice = "-5"
	_, err := New().Validate(sub)
	fields := fieldsOf(t, err)
	if fields["original_price"] != "Must be a valid number" {
		t.Fatalf("original_price message = %q", fields["original_price"])
	}
	if fields["deal_price"] != "Must be greater than 0" {
		t.Fatalf("deal_price message = %q", fields["deal_price"])
	}
}

func TestValidateSuppliedDiscountBounds(t *testing.T) {
	sub := validSubmission()
	bad := 120
	sub.Discount = &bad
	_, err := New().Validate(sub)
	fields := fieldsOf(t, err)
	if _, ok := fields["discount"]; !ok {
		t.Fatalf("expected discount violation, got %v", fields)
	}

	sub = validSubmission()
	supplied := 35
	sub.Discount = &supplied
	cand, err := New().Validate(sub)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cand.Discount != 35 {
		t.Fatalf("supplied discount overwritten: %d", cand.Discount)
	}
}

func TestValidateDiscountRounding(t *testing.T) {
	sub := validSubmission()
	sub.OriginalPrice = "89.00"
	sub.DealPrice = "49.00"
	cand, err := New().Validate(sub)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// (89-49)/89*100 = 44.94..., rounds to 45.
	if cand.Discount != 45 {
		t.Fatalf("discount = %d, want 45", cand.Discount)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Neural Headset Pro", "neural-headset-pro"},
		{"50% Off: Quantum Blender!", "50-off-quantum-blender"},
		{"  spaced   out  title ", "spaced-out-title"},
		{"Émigré", "migr"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
