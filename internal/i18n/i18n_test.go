package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("th-TH,th;q=0.8") != "th" {
		t.Fatalf("expected th")
	}
	if DetectLanguage("") != "th" {
		t.Fatalf("expected default th")
	}
	if DetectLanguage("fr-FR") != "th" {
		t.Fatalf("expected th fallback for unsupported language")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("th", "required") != "จำเป็นต้องระบุ" {
		t.Fatalf("unexpected th translation")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to th translation if it exists
	if T("ja", "login_failed") != "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง" {
		t.Fatalf("expected th fallback for ja lang")
	}
}
