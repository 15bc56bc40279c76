// Package i18n holds the th/en message catalog for flash messages,
// validation codes, and shared UI labels. Thai is the default language.
package i18n

import "strings"

var messages = map[string]map[string]string{
	"th": {
		"required":                 "จำเป็นต้องระบุ",
		"must_be_positive":         "ต้องมากกว่าศูนย์",
		"invalid_email":            "อีเมลไม่ถูกต้อง",
		"invalid_doc_type":         "ประเภทเอกสารไม่ถูกต้อง",
		"invalid_status":           "สถานะไม่ถูกต้อง",
		"login_success":            "เข้าสู่ระบบสำเร็จ",
		"login_failed":             "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
		"logout_success":           "ออกจากระบบเรียบร้อย",
		"login_required":           "กรุณาเข้าสู่ระบบก่อน",
		"document_saved":           "บันทึกเอกสารเรียบร้อย",
		"document_deleted":         "ลบเอกสารเรียบร้อย",
		"company_saved":            "บันทึกข้อมูลบริษัทเรียบร้อย",
		"email_sent":               "ส่งอีเมลสำเร็จ",
		"email_missing_to":         "กรุณาระบุอีเมลผู้รับ",
		"duplicate_quotation_only": "สามารถสร้างซ้ำได้เฉพาะใบเสนอราคาเท่านั้น",
		"corrupt_lineage":          "ข้อมูลสายเอกสารผิดพลาด กรุณาติดต่อผู้ดูแลระบบ",
	},
	"en": {
		"required":                 "Required",
		"must_be_positive":         "Must be greater than zero",
		"invalid_email":            "Invalid email address",
		"invalid_doc_type":         "Invalid document type",
		"invalid_status":           "Invalid status",
		"login_success":            "Signed in",
		"login_failed":             "Wrong username or password",
		"logout_success":           "Signed out",
		"login_required":           "Please sign in first",
		"document_saved":           "Document saved",
		"document_deleted":         "Document deleted",
		"company_saved":            "Company settings saved",
		"email_sent":               "Email sent",
		"email_missing_to":         "Recipient email is required",
		"duplicate_quotation_only": "Only quotations can be duplicated",
		"corrupt_lineage":          "Document chain is corrupt, please contact an administrator",
	},
}

// T translates a code for a language, falling back to Thai, then to the code
// itself so missing entries stay visible instead of blanking the UI.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages["th"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks th or en from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "th") {
			return "th"
		}
	}
	return "th"
}
