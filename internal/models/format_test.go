package models

import "testing"

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{"RFC3339", "2024-03-15T09:30:00Z", "15/03/2024 09:30"},
		{"RFC3339Nano", "2024-03-15T09:30:00.123456789Z", "15/03/2024 09:30"},
		{"Millis", "2024-03-15T09:30:00.000Z", "15/03/2024 09:30"},
		{"NoZone", "2024-03-15T09:30:00", "15/03/2024 09:30"},
		{"Malformed", "not-a-date", "not-a-date"},
		{"Empty", "", NA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.iso); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.iso, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("2024-03-15T09:30:00Z"); !ok {
		t.Error("ParseDate should accept RFC3339")
	}
	if _, ok := ParseDate("garbage"); ok {
		t.Error("ParseDate should reject garbage")
	}
}
