package imagepath

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespaceOnly", "   ", ""},
		{"absoluteHTTP", "http://cdn.example.com/a.png", "http://cdn.example.com/a.png"},
		{"absoluteHTTPS", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"publicRooted", "/public/images/a.png", "/images/a.png"},
		{"publicRelative", "public/images/a.png", "/images/a.png"},
		{"rooted", "/images/a.png", "/images/a.png"},
		{"dataURI", "data:image/png;base64,iVBOR", "data:image/png;base64,iVBOR"},
		{"bareFilename", "a.png", "/a.png"},
		{"trimmed", "  images/a.png  ", "/images/a.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"public/images/a.png",
		"/public/images/a.png",
		"a.png",
		"https://cdn.example.com/a.png",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestServable(t *testing.T) {
	if !Servable("/images/a.png") {
		t.Fatal("rooted path should be servable")
	}
	if !Servable("https://cdn.example.com/a.png") {
		t.Fatal("absolute URL should be servable")
	}
	if !Servable("data:image/png;base64,iVBOR") {
		t.Fatal("data URI should be servable")
	}
	if Servable("images/a.png") {
		t.Fatal("relative path should not be servable")
	}
	if Servable("") {
		t.Fatal("empty path should not be servable")
	}
}
