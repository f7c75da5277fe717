package booking

import (
	"regexp"
	"testing"
)

func TestNewReservationID(t *testing.T) {
	pattern := regexp.MustCompile(`^SOL-20251225-\d{4}$`)

	for range 20 {
		id := newReservationID("Sol y Mar", "2025-12-25")
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match LLL-YYYYMMDD-NNNN", id)
		}
	}
}

func TestIDPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sol y Mar", "SOL"},
		{"Restaurante Sol", "RES"},
		{"la marea", "LAM"},
		{"El 7 Mares", "EL7"},
		{"ño", "RES"},
		{"", "RES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idPrefix(tt.name); got != tt.want {
				t.Errorf("idPrefix(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
