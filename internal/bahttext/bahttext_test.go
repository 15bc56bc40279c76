package bahttext

import (
	"math"
	"testing"
)

func TestTextWholeBaht(t *testing.T) {
	cases := map[float64]string{
		0:         "ศูนย์บาทถ้วน",
		1:         "หนึ่งบาทถ้วน",
		10:        "สิบบาทถ้วน",
		11:        "สิบเอ็ดบาทถ้วน",
		20:        "ยี่สิบบาทถ้วน",
		21:        "ยี่สิบเอ็ดบาทถ้วน",
		100:       "หนึ่งร้อยบาทถ้วน",
		101:       "หนึ่งร้อยเอ็ดบาทถ้วน",
		1000:      "หนึ่งพันบาทถ้วน",
		10000:     "หนึ่งหมื่นบาทถ้วน",
		100000:    "หนึ่งแสนบาทถ้วน",
		1000000:   "หนึ่งล้านบาทถ้วน",
		1234567:   "หนึ่งล้านสองแสนสามหมื่นสี่พันห้าร้อยหกสิบเจ็ดบาทถ้วน",
		9999999:   "เก้าล้านเก้าแสนเก้าหมื่นเก้าพันเก้าร้อยเก้าสิบเก้าบาทถ้วน",
		2026:      "สองพันยี่สิบหกบาทถ้วน",
		305:       "สามร้อยห้าบาทถ้วน",
	}
	for in, want := range cases {
		if got := Text(in); got != want {
			t.Fatalf("Text(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTextWithSatang(t *testing.T) {
	cases := map[float64]string{
		21.50:  "ยี่สิบเอ็ดบาทห้าสิบสตางค์",
		0.25:   "ศูนย์บาทยี่สิบห้าสตางค์",
		1.01:   "หนึ่งบาทหนึ่งสตางค์",
		100.75: "หนึ่งร้อยบาทเจ็ดสิบห้าสตางค์",
		5.11:   "ห้าบาทสิบเอ็ดสตางค์",
	}
	for in, want := range cases {
		if got := Text(in); got != want {
			t.Fatalf("Text(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTextSatangRoundingCarry(t *testing.T) {
	// 1.999 rounds to 2.00, not 1 baht 100 satang
	if got := Text(1.999); got != "สองบาทถ้วน" {
		t.Fatalf("Text(1.999) = %q", got)
	}
}

func TestTextLenientFailures(t *testing.T) {
	for _, v := range []float64{-5, -0.01, math.NaN(), math.Inf(1), 10_000_000, 99_999_999} {
		if got := Text(v); got != "" {
			t.Fatalf("Text(%v) = %q, want empty", v, got)
		}
	}
}

func TestFromString(t *testing.T) {
	if got := FromString("21.50"); got != "ยี่สิบเอ็ดบาทห้าสิบสตางค์" {
		t.Fatalf("FromString(21.50) = %q", got)
	}
	if got := FromString("0"); got != "ศูนย์บาทถ้วน" {
		t.Fatalf("FromString(0) = %q", got)
	}
	for _, s := range []string{"abc", "", "12.3.4", "-5"} {
		if got := FromString(s); got != "" {
			t.Fatalf("FromString(%q) = %q, want empty", s, got)
		}
	}
}
