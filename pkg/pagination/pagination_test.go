package pagination

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := Normalize(Params{}, 100)
		if p.Page != 1 || p.Limit != DefaultLimit {
			t.Fatalf("expected page 1 limit %d, got %+v", DefaultLimit, p)
		}
	})

	t.Run("clampsToMax", func(t *testing.T) {
		p := Normalize(Params{Page: 2, Limit: 500}, 100)
		if p.Limit != 100 {
			t.Fatalf("expected limit clamped to 100, got %d", p.Limit)
		}
	})

	t.Run("negativeInputs", func(t *testing.T) {
		p := Normalize(Params{Page: -3, Limit: -1}, 100)
		if p.Page != 1 || p.Limit != DefaultLimit {
			t.Fatalf("expected defaults for negative inputs, got %+v", p)
		}
	})

	t.Run("zeroMaxFallsBack", func(t *testing.T) {
		p := Normalize(Params{Limit: 250}, 0)
		if p.Limit != MaxLimit {
			t.Fatalf("expected fallback max %d, got %d", MaxLimit, p.Limit)
		}
	})
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 20}).Offset(); got != 0 {
		t.Fatalf("page 1 offset = %d, want 0", got)
	}
	if got := (Params{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Fatalf("page 3 offset = %d, want 40", got)
	}
}

func TestBuild(t *testing.T) {
	page := Build(Params{Page: 2, Limit: 20}, 45)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.Total != 45 || page.Page != 2 || page.Limit != 20 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}

	empty := Build(Params{Page: 1, Limit: 20}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty result, got %d", empty.TotalPages)
	}
}
