package application

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"year", "2024", "2024-01-01"},
		{"year month", "2024-08", "2024-08-01"},
		{"iso date", "2023-05-17", "2023-05-17"},
		{"timestamp", "2023-05-17T23:30:00-02:00", "2023-05-18"},
		{"month name", "March 2021", "2021-03-01"},
		{"padded", "  2019 ", "2019-01-01"},
		{"empty", "", "2025-03-14"},
		{"free text", "Since forever", "2025-03-14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in, now); got != tt.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateOrToday(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := dateOrToday(nil, now); got != "2025-01-02" {
		t.Fatalf("nil date = %q", got)
	}
	d := "2020-06"
	if got := dateOrToday(&d, now); got != "2020-06-01" {
		t.Fatalf("date = %q", got)
	}
}
