package media

import "testing"

func TestScaleToFit(t *testing.T) {
	cases := []struct {
		w, h, max  int
		expW, expH int
	}{
		{3840, 2160, 1920, 1920, 1080},
		{2160, 3840, 1920, 1080, 1920},
		{2000, 2000, 1000, 1000, 1000},
		{10000, 10, 1920, 1920, 2},
	}
	for _, tc := range cases {
		w, h := scaleToFit(tc.w, tc.h, tc.max)
		if w != tc.expW || h != tc.expH {
			t.Fatalf("%dx%d max %d: expected %dx%d, got %dx%d", tc.w, tc.h, tc.max, tc.expW, tc.expH, w, h)
		}
	}
}

func TestNormalizeContentType(t *testing.T) {
	cases := []struct {
		value, file string
		expected    string
	}{
		{"image/jpg", "a.jpg", "image/jpeg"},
		{"IMAGE/PNG", "a.png", "image/png"},
		{"", "photo.JPEG", "image/jpeg"},
		{"", "photo.webp", "image/webp"},
		{"", "mystery.bin", "image/jpeg"},
	}
	for _, tc := range cases {
		if got := NormalizeContentType(tc.value, tc.file); got != tc.expected {
			t.Fatalf("(%q, %q): expected %q, got %q", tc.value, tc.file, tc.expected, got)
		}
	}
}
