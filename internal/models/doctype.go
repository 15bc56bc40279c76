package models

import "errors"

// DocType is the closed set of document types the app can issue.
type DocType string

const (
	DocTypeQuotation    DocType = "quotation"
	DocTypeBilling      DocType = "billing"
	DocTypeTaxInvoice   DocType = "tax_invoice"
	DocTypeReceipt      DocType = "receipt"
	DocTypeDeliveryNote DocType = "delivery_note"
)

var ErrInvalidDocType = errors.New("invalid_doc_type")

// DocTypeInfo carries the per-type display metadata and numbering prefix.
type DocTypeInfo struct {
	Prefix string
	NameTH string
	NameEN string
	Icon   string
	Color  string
}

var docTypeInfos = map[DocType]DocTypeInfo{
	DocTypeQuotation:    {Prefix: "QT", NameTH: "ใบเสนอราคา", NameEN: "Quotation", Icon: "ri-file-list-3-line", Color: "#3b82f6"},
	DocTypeBilling:      {Prefix: "BL", NameTH: "ใบวางบิล", NameEN: "Billing Note", Icon: "ri-bill-line", Color: "#f59e0b"},
	DocTypeTaxInvoice:   {Prefix: "IV", NameTH: "ใบกำกับภาษี", NameEN: "Tax Invoice", Icon: "ri-receipt-line", Color: "#10b981"},
	DocTypeReceipt:      {Prefix: "RC", NameTH: "ใบเสร็จรับเงิน", NameEN: "Receipt", Icon: "ri-money-dollar-circle-line", Color: "#8b5cf6"},
	DocTypeDeliveryNote: {Prefix: "DV", NameTH: "ใบส่งสินค้า", NameEN: "Delivery Note", Icon: "ri-truck-line", Color: "#64748b"},
}

// ParseDocType is the single place an untrusted string becomes a DocType.
func ParseDocType(s string) (DocType, error) {
	t := DocType(s)
	if _, ok := docTypeInfos[t]; !ok {
		return "", ErrInvalidDocType
	}
	return t, nil
}

func (t DocType) Valid() bool {
	_, ok := docTypeInfos[t]
	return ok
}

func (t DocType) Info() DocTypeInfo { return docTypeInfos[t] }

func (t DocType) Prefix() string { return docTypeInfos[t].Prefix }

// AllDocTypes returns the issuable types in dashboard order. The delivery
// note is derived only, never created from scratch, so it comes last.
func AllDocTypes() []DocType {
	return []DocType{DocTypeQuotation, DocTypeBilling, DocTypeTaxInvoice, DocTypeReceipt, DocTypeDeliveryNote}
}

// DocStatus is the closed set of document lifecycle states.
type DocStatus string

const (
	StatusDraft     DocStatus = "draft"
	StatusSaved     DocStatus = "saved"
	StatusApproved  DocStatus = "approved"
	StatusRejected  DocStatus = "rejected"
	StatusConverted DocStatus = "converted"
)

type DocStatusInfo struct {
	NameTH string
	Color  string
	Bg     string
}

var docStatusInfos = map[DocStatus]DocStatusInfo{
	StatusDraft:     {NameTH: "ร่าง", Color: "#94a3b8", Bg: "rgba(148,163,184,0.15)"},
	StatusSaved:     {NameTH: "บันทึกแล้ว", Color: "#38bdf8", Bg: "rgba(56,189,248,0.15)"},
	StatusApproved:  {NameTH: "อนุมัติ", Color: "#34d399", Bg: "rgba(52,211,153,0.15)"},
	StatusRejected:  {NameTH: "ไม่อนุมัติ", Color: "#f87171", Bg: "rgba(248,113,113,0.15)"},
	StatusConverted: {NameTH: "สร้างบิลแล้ว", Color: "#a78bfa", Bg: "rgba(167,139,250,0.15)"},
}

func (s DocStatus) Valid() bool {
	_, ok := docStatusInfos[s]
	return ok
}

func (s DocStatus) Info() DocStatusInfo { return docStatusInfos[s] }
