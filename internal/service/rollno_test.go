package service

import (
	"fmt"
	"testing"

	"github.com/prasanthzodiac/College-connect-sub000/config"
)

func testCodec() *RollNoCodec {
	return NewRollNoCodec(&config.CollegeConfig{
		EmailDomain: "college.edu",
		RollPrefix:  "21BCS",
	})
}

func TestDeriveRollNumber(t *testing.T) {
	codec := testCodec()

	tests := []struct {
		email string
		want  string
	}{
		{"student1@college.edu", "21BCS001"},
		{"student7@college.edu", "21BCS007"},
		{"student42@college.edu", "21BCS042"},
		{"student123@college.edu", "21BCS123"},
		// accounts outside the convention have no roll number
		{"staff1@college.edu", ""},
		{"admin@college.edu", ""},
		{"student@college.edu", ""},
		{"student7extra@college.edu", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := codec.DeriveRollNumber(tt.email); got != tt.want {
			t.Errorf("DeriveRollNumber(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestRollToEmail(t *testing.T) {
	codec := testCodec()

	tests := []struct {
		roll string
		want string
	}{
		{"21BCS001", "student1@college.edu"},
		{"21BCS007", "student7@college.edu"},
		{"21BCS123", "student123@college.edu"},
		// any prefix works as long as a 3-digit suffix exists
		{"22BEC009", "student9@college.edu"},
		{"21BCS07", ""},
		{"no-digits", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := codec.RollToEmail(tt.roll); got != tt.want {
			t.Errorf("RollToEmail(%q) = %q, want %q", tt.roll, got, tt.want)
		}
	}
}

func TestRollNumberRoundTrip(t *testing.T) {
	codec := testCodec()

	for n := 1; n <= 999; n++ {
		roll := fmt.Sprintf("21BCS%03d", n)
		email := codec.RollToEmail(roll)
		if email == "" {
			t.Fatalf("RollToEmail(%q) returned empty", roll)
		}
		if got := codec.DeriveRollNumber(email); got != roll {
			t.Fatalf("round trip %q -> %q -> %q", roll, email, got)
		}
	}
}
