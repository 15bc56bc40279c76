package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/packytong/Flowaccount/internal/auth"
	"github.com/packytong/Flowaccount/internal/httpx"
	"github.com/packytong/Flowaccount/internal/lineage"
	"github.com/packytong/Flowaccount/internal/middleware"
	"github.com/packytong/Flowaccount/internal/models"
	pdfgen "github.com/packytong/Flowaccount/internal/pdf"
	"github.com/packytong/Flowaccount/internal/services"
	"github.com/packytong/Flowaccount/internal/validation"
	"github.com/packytong/Flowaccount/internal/view"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocumentHandler serves the document CRUD plus conversion, duplication,
// status changes, and PDF export. Responses follow the dual-format pattern:
// JSON for API clients, rendered templates for browsers.
type DocumentHandler struct {
	DB  *gorm.DB
	Svc *services.DocumentService
}

func NewDocumentHandler(db *gorm.DB, svc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{DB: db, Svc: svc}
}

type itemRequest struct {
	Position    int     `json:"position"`
	Description string  `json:"description"`
	Details     string  `json:"details"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

type documentRequest struct {
	DocType         string `json:"doc_type"`
	CustomerID      uint   `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CustomerTaxID   string `json:"customer_tax_id"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`

	DocDate    string `json:"doc_date"`
	CreditDays int    `json:"credit_days"`
	DueDate    string `json:"due_date"`

	ReferenceNumber string `json:"reference_number"`
	Salesperson     string `json:"salesperson"`
	Project         string `json:"project"`
	PriceType       string `json:"price_type"`

	DiscountPercent       float64 `json:"discount_percent"`
	DiscountAmount        float64 `json:"discount_amount"`
	VatEnabled            *bool   `json:"vat_enabled"`
	WithholdingTaxEnabled *bool   `json:"withholding_tax_enabled"`
	WithholdingTaxPercent float64 `json:"withholding_tax_percent"`

	Notes         string        `json:"notes"`
	InternalNotes string        `json:"internal_notes"`
	Items         []itemRequest `json:"items"`
}

func decodeDocumentRequest(r *http.Request) (*documentRequest, error) {
	var req documentRequest
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	f := r.Form
	req.DocType = f.Get("doc_type")
	if v := f.Get("customer_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			req.CustomerID = uint(id)
		}
	}
	req.CustomerName = f.Get("customer_name")
	req.CustomerAddress = f.Get("customer_address")
	req.CustomerTaxID = f.Get("customer_tax_id")
	req.CustomerPhone = f.Get("customer_phone")
	req.CustomerEmail = f.Get("customer_email")
	req.DocDate = f.Get("doc_date")
	if v := f.Get("credit_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.CreditDays = n
		}
	}
	req.DueDate = f.Get("due_date")
	req.ReferenceNumber = f.Get("reference_number")
	req.Salesperson = f.Get("salesperson")
	req.Project = f.Get("project")
	req.PriceType = f.Get("price_type")
	req.DiscountPercent = parseFloat(f.Get("discount_percent"))
	req.DiscountAmount = parseFloat(f.Get("discount_amount"))
	if v := f.Get("vat_enabled"); v != "" {
		b := v == "1" || v == "true" || v == "on"
		req.VatEnabled = &b
	}
	if v := f.Get("withholding_tax_enabled"); v != "" {
		b := v == "1" || v == "true" || v == "on"
		req.WithholdingTaxEnabled = &b
	}
	req.WithholdingTaxPercent = parseFloat(f.Get("withholding_tax_percent"))
	req.Notes = f.Get("notes")
	req.InternalNotes = f.Get("internal_notes")
	descs := f["item_description[]"]
	details := f["item_details[]"]
	qtys := f["item_quantity[]"]
	units := f["item_unit[]"]
	prices := f["item_unit_price[]"]
	for i, desc := range descs {
		it := itemRequest{Position: i + 1, Description: desc}
		if i < len(details) {
			it.Details = details[i]
		}
		if i < len(qtys) {
			it.Quantity = parseFloat(qtys[i])
		}
		if i < len(units) {
			it.Unit = units[i]
		}
		if i < len(prices) {
			it.UnitPrice = parseFloat(prices[i])
		}
		req.Items = append(req.Items, it)
	}
	return &req, nil
}

func parseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fallback
	}
	return t
}

// List: GET /documents?type=quotation – HTML or JSON, with search and pagination.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docType, err := models.ParseDocType(r.URL.Query().Get("type"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_doc_type", nil)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			page = n
			offset = (n - 1) * limit
		}
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	dbq := h.DB.Model(&models.Document{}).Where("doc_type = ?", docType)
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Joins("LEFT JOIN customers ON customers.id = documents.customer_id").
			Where("lower(documents.doc_number) LIKE ? OR lower(customers.name) LIKE ?", like, like)
	}
	if st := r.URL.Query().Get("status"); st != "" {
		if !models.DocStatus(st).Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
			return
		}
		dbq = dbq.Where("documents.status = ?", st)
	}
	var total int64
	dbq.Count(&total)
	var docs []models.Document
	if err := dbq.Preload("Customer").Order("documents.id desc").Limit(limit).Offset(offset).Find(&docs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_documents", nil)
		return
	}
	related := h.relatedCounts(docs)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": docs, "related": related, "total": total, "limit": limit, "offset": offset})
		return
	}
	info := docType.Info()
	_ = view.Render(w, r, "documents.html", map[string]any{
		"Documents": docs, "Related": related, "Total": total, "Page": page, "PageSize": limit,
		"Query": q, "DocType": docType, "TypeInfo": info,
	})
}

// relatedCounts returns, for each listed document, how many documents were
// derived from it, in one batched query.
func (h *DocumentHandler) relatedCounts(docs []models.Document) map[uint]int64 {
	out := make(map[uint]int64, len(docs))
	if len(docs) == 0 {
		return out
	}
	ids := make([]uint, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	type row struct {
		SourceDocumentID uint
		N                int64
	}
	var rows []row
	if err := h.DB.Model(&models.Document{}).
		Select("source_document_id, count(*) AS n").
		Where("source_document_id IN ?", ids).
		Group("source_document_id").Scan(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.SourceDocumentID] = r.N
	}
	return out
}

// Create: POST /documents – persists a new document with items in one
// transaction. A customer can be attached by id or created inline by name.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDocumentRequest(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	docType, err := models.ParseDocType(req.DocType)
	if err != nil || docType == models.DocTypeDeliveryNote {
		// Delivery notes only come out of quotation conversion.
		httpx.JSONError(w, http.StatusBadRequest, "invalid_doc_type", nil)
		return
	}
	v := validation.Violations{}
	if req.CustomerID == 0 {
		validation.Required("customer_name", req.CustomerName, v)
	}
	validation.Email("customer_email", req.CustomerEmail, v)
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	now := h.Svc.Now()
	doc := buildDocument(docType, req, now)
	var out models.Document
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		customerID, cerr := resolveCustomer(tx, req)
		if cerr != nil {
			return cerr
		}
		doc.CustomerID = customerID
		number, nerr := services.NextDocumentNumber(tx, docType, now)
		if nerr != nil {
			return nerr
		}
		doc.DocNumber = number
		if cerr := tx.Create(&doc).Error; cerr != nil {
			return cerr
		}
		out = doc
		return nil
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_document", nil)
		return
	}
	writeAudit(h.DB, r, "Document", out.ID, "create", out.DocNumber)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, out)
		return
	}
	middleware.Flash(w, r, "document_saved")
	http.Redirect(w, r, "/documents/view?id="+strconv.Itoa(int(out.ID)), http.StatusSeeOther)
}

// Update: POST /documents/update?id= – replaces fields and line items.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	req, err := decodeDocumentRequest(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	var out models.Document
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.First(&doc, id).Error; err != nil {
			return err
		}
		customerID, cerr := resolveCustomer(tx, req)
		if cerr != nil {
			return cerr
		}
		updated := buildDocument(doc.DocType, req, h.Svc.Now())
		updated.ID = doc.ID
		updated.DocNumber = doc.DocNumber
		updated.Status = doc.Status
		updated.SourceDocumentID = doc.SourceDocumentID
		updated.CustomerID = customerID
		updated.CreatedAt = doc.CreatedAt
		if err := tx.Where("document_id = ?", doc.ID).Delete(&models.DocumentItem{}).Error; err != nil {
			return err
		}
		items := updated.Items
		updated.Items = nil
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].DocumentID = doc.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		updated.Items = items
		out = updated
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_document", nil)
		return
	}
	writeAudit(h.DB, r, "Document", out.ID, "update", out.DocNumber)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	middleware.Flash(w, r, "document_saved")
	http.Redirect(w, r, "/documents/view?id="+strconv.Itoa(int(out.ID)), http.StatusSeeOther)
}

// View: GET /documents/view?id= – the document with items, customer, source
// document, and links to every related document in its chain.
func (h *DocumentHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var doc models.Document
	err := h.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("item_order") }).
		Preload("Customer").Preload("SourceDocument").First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_document", nil)
		return
	}
	related, err := h.Svc.Related(&doc)
	if err != nil {
		if errors.Is(err, lineage.ErrCorruptLineage) {
			httpx.JSONError(w, http.StatusInternalServerError, "corrupt_lineage", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_related", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"document": doc, "related": related})
		return
	}
	_ = view.Render(w, r, "document_view.html", map[string]any{
		"Document": doc, "Related": related,
		"TypeInfo": doc.DocType.Info(), "StatusInfo": doc.Status.Info(),
	})
}

// UpdateStatus: POST /documents/status?id=&status=
func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	status := models.DocStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.DocStatus(r.FormValue("status"))
	}
	if !status.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	res := h.DB.Model(&models.Document{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeAudit(h.DB, r, "Document", id, "status", string(status))
	httpx.JSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// Delete: POST /documents/delete?id= – removes the document and its items.
// Children keep their copied data and become chain roots of their own.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var doc models.Document
	if err := h.DB.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_document", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", doc.ID).Delete(&models.DocumentItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doc).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_document", nil)
		return
	}
	writeAudit(h.DB, r, "Document", doc.ID, "delete", doc.DocNumber)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	middleware.Flash(w, r, "document_deleted")
	http.Redirect(w, r, "/documents?type="+string(doc.DocType), http.StatusSeeOther)
}

// Convert: POST /documents/convert?id=&target=billing
func (h *DocumentHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	target, err := models.ParseDocType(r.URL.Query().Get("target"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_doc_type", nil)
		return
	}
	res, err := h.Svc.Convert(id, target)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	case errors.Is(err, models.ErrInvalidDocType):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_doc_type", nil)
		return
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert", nil)
		return
	}
	detail := res.Document.DocNumber
	if res.DeliveryNote != nil {
		detail += " +" + res.DeliveryNote.DocNumber
	}
	if !res.Existing {
		writeAudit(h.DB, r, "Document", id, "convert", detail)
	}
	if httpx.WantsJSON(r) {
		payload := map[string]any{"document": res.Document, "existing": res.Existing}
		if res.DeliveryNote != nil {
			payload["delivery_note"] = res.DeliveryNote
		}
		httpx.JSON(w, http.StatusOK, payload)
		return
	}
	http.Redirect(w, r, "/documents/view?id="+strconv.Itoa(int(res.Document.ID)), http.StatusSeeOther)
}

// Duplicate: POST /documents/duplicate?id= – quotations only.
func (h *DocumentHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	clone, err := h.Svc.Duplicate(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	case errors.Is(err, services.ErrNotQuotation):
		httpx.JSONError(w, http.StatusBadRequest, "duplicate_quotation_only", nil)
		return
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_duplicate", nil)
		return
	}
	writeAudit(h.DB, r, "Document", clone.ID, "duplicate", clone.DocNumber)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, clone)
		return
	}
	http.Redirect(w, r, "/documents/view?id="+strconv.Itoa(int(clone.ID)), http.StatusSeeOther)
}

// PDF: GET /documents/pdf?id=
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	data, filename, err := h.renderPDF(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *DocumentHandler) renderPDF(id uint) ([]byte, string, error) {
	var doc models.Document
	err := h.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("item_order") }).
		Preload("Customer").First(&doc, id).Error
	if err != nil {
		return nil, "", err
	}
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	data := pdfgen.DocumentData{
		Title:           doc.DocType.Info().NameTH,
		DocNumber:       doc.DocNumber,
		DocDate:         view.ThaiDate(doc.DocDate),
		DueDate:         view.ThaiDate(doc.DueDate),
		ReferenceNumber: doc.ReferenceNumber,
		Salesperson:     doc.Salesperson,
		Project:         doc.Project,
		Company: pdfgen.PartyData{
			Name: company.Name, Address: company.Address, TaxID: company.TaxID,
			Branch: company.Branch, Phone: company.Phone, Email: company.Email,
		},
		Subtotal:       doc.Subtotal,
		DiscountAmount: doc.DiscountAmount,
		AfterDiscount:  doc.AfterDiscount,
		VatEnabled:     doc.VatEnabled,
		VatAmount:      doc.VatAmount,
		GrandTotal:     doc.GrandTotal,
		WhtEnabled:     doc.WithholdingTaxEnabled,
		WhtPercent:     doc.WithholdingTaxPercent,
		WhtAmount:      doc.WithholdingTaxAmount,
		NetTotal:       doc.NetTotal,
		Notes:          doc.Notes,
	}
	if doc.Customer != nil {
		data.Customer = pdfgen.PartyData{
			Name: doc.Customer.Name, Address: doc.Customer.Address,
			TaxID: doc.Customer.TaxID, Branch: doc.Customer.Branch,
			Phone: doc.Customer.Phone, Email: doc.Customer.Email,
		}
	}
	for _, it := range doc.Items {
		data.Items = append(data.Items, pdfgen.ItemData{
			Position: it.Position, Description: it.Description, Details: it.Details,
			Quantity: it.Quantity, Unit: it.Unit, UnitPrice: it.UnitPrice, Amount: it.Amount,
		})
	}
	pdfBytes, err := pdfgen.DocumentPDF(data)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, doc.DocNumber + ".pdf", nil
}

// buildDocument maps a validated request into a Document with recomputed
// totals and per-line amounts. Numbering and customer linkage happen later
// inside the create/update transaction.
func buildDocument(docType models.DocType, req *documentRequest, now time.Time) models.Document {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	docDate := parseDate(req.DocDate, today)
	creditDays := req.CreditDays
	if creditDays <= 0 {
		creditDays = 30
	}
	dueDate := parseDate(req.DueDate, docDate.AddDate(0, 0, creditDays))
	priceType := req.PriceType
	if priceType == "" {
		priceType = "ราคาไม่รวมภาษี"
	}
	vatEnabled := true
	if req.VatEnabled != nil {
		vatEnabled = *req.VatEnabled
	}
	whtEnabled := true
	if req.WithholdingTaxEnabled != nil {
		whtEnabled = *req.WithholdingTaxEnabled
	}
	whtPercent := req.WithholdingTaxPercent
	if whtPercent <= 0 {
		whtPercent = 7
	}
	doc := models.Document{
		DocType:         docType,
		Status:          models.StatusDraft,
		DocDate:         docDate,
		CreditDays:      creditDays,
		DueDate:         dueDate,
		ReferenceNumber: req.ReferenceNumber,
		Salesperson:     req.Salesperson,
		Project:         req.Project,
		PriceType:       priceType,

		DiscountPercent:       req.DiscountPercent,
		DiscountAmount:        req.DiscountAmount,
		VatEnabled:            vatEnabled,
		WithholdingTaxEnabled: whtEnabled,
		WithholdingTaxPercent: whtPercent,

		Notes:         req.Notes,
		InternalNotes: req.InternalNotes,
	}
	pos := 0
	for _, it := range req.Items {
		// blank rows from the form grid carry no description; drop them
		if strings.TrimSpace(it.Description) == "" {
			continue
		}
		pos++
		amount, _ := decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice)).Round(2).Float64()
		doc.Items = append(doc.Items, models.DocumentItem{
			Position:    pos,
			Description: it.Description,
			Details:     it.Details,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			Amount:      amount,
		})
	}
	totals := services.ComputeTotals(&doc)
	doc.Subtotal = totals.Subtotal
	doc.DiscountAmount = totals.DiscountAmount
	doc.AfterDiscount = totals.AfterDiscount
	doc.VatAmount = totals.VatAmount
	doc.GrandTotal = totals.GrandTotal
	doc.WithholdingTaxAmount = totals.WithholdingTaxAmount
	doc.NetTotal = totals.NetTotal
	return doc
}

// resolveCustomer returns the id to attach: an existing one when given,
// otherwise a customer created inline from the request fields.
func resolveCustomer(tx *gorm.DB, req *documentRequest) (*uint, error) {
	if req.CustomerID != 0 {
		var c models.Customer
		if err := tx.First(&c, req.CustomerID).Error; err != nil {
			return nil, err
		}
		return &c.ID, nil
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, nil
	}
	c := models.Customer{
		Name: req.CustomerName, Address: req.CustomerAddress,
		TaxID: req.CustomerTaxID, Phone: req.CustomerPhone, Email: req.CustomerEmail,
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

func writeAudit(db *gorm.DB, r *http.Request, entityType string, entityID uint, action, detail string) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entry := models.AuditLog{UserID: uid, EntityType: entityType, EntityID: entityID, Action: action, Detail: detail}
	if err := db.Create(&entry).Error; err != nil {
		// audit failures never block the main operation
		_ = err
	}
}
