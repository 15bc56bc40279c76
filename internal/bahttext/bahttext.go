// Package bahttext renders monetary amounts as Thai words, the way they are
// printed on tax invoices and receipts (e.g. 21.50 → ยี่สิบเอ็ดบาทห้าสิบสตางค์).
//
// Rendering runs inside display filters that must never take down a page, so
// every function degrades to an empty string instead of returning an error.
package bahttext

import (
	"math"

	"github.com/shopspring/decimal"
)

var thaiDigits = []string{"", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
var thaiPositions = []string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน", "ล้าน"}

// maxMagnitude caps the supported integer part at 7 digits (ล้าน is the
// highest positional unit handled; no สิบล้าน recursion).
const maxMagnitude = 10_000_000

// Text renders a non-negative amount as Thai baht words.
// Negative, non-finite, or out-of-range amounts render as "".
func Text(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ""
	}
	return fromDecimal(decimal.NewFromFloat(amount))
}

// FromString parses s as a decimal number and renders it; anything that does
// not parse renders as "".
func FromString(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ""
	}
	if d.IsNegative() {
		return ""
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) string {
	baht := d.Truncate(0)
	satang := d.Sub(baht).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	// 0.999... rounds satang up to 100: carry into the baht part.
	if satang >= 100 {
		baht = baht.Add(decimal.NewFromInt(1))
		satang -= 100
	}
	if baht.GreaterThanOrEqual(decimal.NewFromInt(maxMagnitude)) {
		return ""
	}

	text := integerText(baht.IntPart()) + "บาท"
	if satang == 0 {
		return text + "ถ้วน"
	}
	return text + integerText(satang) + "สตางค์"
}

// integerText converts a magnitude digit by digit, most significant first.
// Irregulars: trailing 1 in a multi-digit number is เอ็ด, 2 in the tens
// position is ยี่สิบ, 1 in the tens position is a bare สิบ, zeros are skipped.
func integerText(n int64) string {
	if n == 0 {
		return "ศูนย์"
	}
	digits := []byte{}
	for v := n; v > 0; v /= 10 {
		digits = append(digits, byte(v%10))
	}
	length := len(digits)
	out := ""
	for i := length - 1; i >= 0; i-- {
		d := int(digits[i])
		if d == 0 {
			continue
		}
		switch {
		case i == 0 && d == 1 && length > 1:
			out += "เอ็ด"
		case i == 1 && d == 2:
			out += "ยี่สิบ"
		case i == 1 && d == 1:
			out += "สิบ"
		default:
			out += thaiDigits[d] + thaiPositions[i]
		}
	}
	return out
}
