package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
)

func TestParseImageList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		entries, err := ParseImageList("")
		if err != nil || entries != nil {
			t.Fatalf("expected nil entries, got %v err %v", entries, err)
		}
	})

	t.Run("jsonArray", func(t *testing.T) {
		entries, err := ParseImageList(`["a.png","b.png"]`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 || entries[0] != "a.png" || entries[1] != "b.png" {
			t.Fatalf("unexpected entries: %v", entries)
		}
	})

	t.Run("jsonArrayWithLeadingSpace", func(t *testing.T) {
		entries, err := ParseImageList(`  ["a.png"]`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0] != "a.png" {
			t.Fatalf("unexpected entries: %v", entries)
		}
	})

	t.Run("commaSeparated", func(t *testing.T) {
		entries, err := ParseImageList("a.png, b.png , ,c.png")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 || entries[1] != "b.png" {
			t.Fatalf("unexpected entries: %v", entries)
		}
	})

	t.Run("singleValue", func(t *testing.T) {
		entries, err := ParseImageList("a.png")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0] != "a.png" {
			t.Fatalf("unexpected entries: %v", entries)
		}
	})

	t.Run("malformedJSON", func(t *testing.T) {
		if _, err := ParseImageList(`["a.png"`); err == nil {
			t.Fatal("expected error for malformed JSON")
		}
	})
}

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestTransformerImages(t *testing.T) {
	tr := Transformer{FallbackImageURL: "/images/placeholder.png"}

	t.Run("normalizesAndDedupes", func(t *testing.T) {
		product := &models.Product{
			Images: strPtr(`["public/a.png","/a.png","b.png"]`),
		}
		dto := tr.Product(product, enums.LocaleEnglish)
		if len(dto.Images) != 2 {
			t.Fatalf("expected 2 images after dedup, got %v", dto.Images)
		}
		if dto.Images[0] != "/a.png" || dto.Images[1] != "/b.png" {
			t.Fatalf("unexpected images: %v", dto.Images)
		}
	})

	t.Run("fallbackWhenEmpty", func(t *testing.T) {
		dto := tr.Product(&models.Product{}, enums.LocaleEnglish)
		if len(dto.Images) != 1 || dto.Images[0] != "/images/placeholder.png" {
			t.Fatalf("expected fallback image, got %v", dto.Images)
		}
	})

	t.Run("fallbackOnMalformedJSON", func(t *testing.T) {
		product := &models.Product{Images: strPtr(`["broken`)}
		dto := tr.Product(product, enums.LocaleEnglish)
		if len(dto.Images) != 1 || dto.Images[0] != "/images/placeholder.png" {
			t.Fatalf("expected fallback on bad JSON, got %v", dto.Images)
		}
	})

	t.Run("noFallbackConfigured", func(t *testing.T) {
		bare := Transformer{}
		dto := bare.Product(&models.Product{}, enums.LocaleEnglish)
		if dto.Images == nil || len(dto.Images) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", dto.Images)
		}
	})

	t.Run("supImagesNormalized", func(t *testing.T) {
		product := &models.Product{
			Images:    strPtr("a.png"),
			SupImage1: strPtr("public/s1.png"),
		}
		dto := tr.Product(product, enums.LocaleEnglish)
		if dto.SupImage1 == nil || *dto.SupImage1 != "/s1.png" {
			t.Fatalf("unexpected sup image: %v", dto.SupImage1)
		}
		if dto.SupImage2 != nil {
			t.Fatal("absent sup image should stay nil")
		}
	})
}

func TestTransformerPricing(t *testing.T) {
	tr := Transformer{FallbackImageURL: "/images/placeholder.png"}

	t.Run("discountApplied", func(t *testing.T) {
		product := &models.Product{
			Price:         decimal.NewFromInt(100),
			DiscountPrice: decPtr(decimal.NewFromInt(80)),
		}
		dto := tr.Product(product, enums.LocaleEnglish)
		if !dto.Price.Equal(decimal.NewFromInt(80)) {
			t.Fatalf("expected effective price 80, got %s", dto.Price)
		}
		if dto.OriginalPrice == nil || !dto.OriginalPrice.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected original price 100, got %v", dto.OriginalPrice)
		}
	})

	t.Run("discountNotBelowPriceIgnored", func(t *testing.T) {
		product := &models.Product{
			Price:         decimal.NewFromInt(100),
			DiscountPrice: decPtr(decimal.NewFromInt(120)),
		}
		dto := tr.Product(product, enums.LocaleEnglish)
		if !dto.Price.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected list price 100, got %s", dto.Price)
		}
		if dto.OriginalPrice != nil {
			t.Fatal("no original price expected when discount is not lower")
		}
	})
}

func TestTransformerLocalization(t *testing.T) {
	tr := Transformer{}
	product := &models.Product{
		Name:          "Shampoo",
		NameAr:        strPtr("شامبو"),
		Description:   strPtr("gentle"),
		DescriptionAr: strPtr("لطيف"),
	}

	en := tr.Product(product, enums.LocaleEnglish)
	if en.Name != "Shampoo" || en.Description == nil || *en.Description != "gentle" {
		t.Fatalf("unexpected english mapping: %+v", en)
	}

	ar := tr.Product(product, enums.LocaleArabic)
	if ar.Name != "شامبو" || ar.Description == nil || *ar.Description != "لطيف" {
		t.Fatalf("unexpected arabic mapping: %+v", ar)
	}

	// Arabic falls back to English when the translation is missing
	bare := &models.Product{Name: "Conditioner"}
	arFallback := tr.Product(bare, enums.LocaleArabic)
	if arFallback.Name != "Conditioner" {
		t.Fatalf("expected english fallback, got %s", arFallback.Name)
	}
}
