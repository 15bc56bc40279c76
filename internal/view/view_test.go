package view

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-9876.54, "-9,876.54"},
		{100, "100.00"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestThaiDate(t *testing.T) {
	d := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := ThaiDate(d); got != "5 มีนาคม 2569" {
		t.Errorf("ThaiDate = %q", got)
	}
	if got := ThaiDate(time.Time{}); got != "" {
		t.Errorf("zero date should render empty, got %q", got)
	}
}
