package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/packytong/Flowaccount/internal/httpx"
	"github.com/packytong/Flowaccount/internal/mail"
	"github.com/packytong/Flowaccount/internal/models"
	"github.com/packytong/Flowaccount/internal/validation"

	"gorm.io/gorm"
)

// EmailHandler sends a document as a PDF attachment. It reuses the document
// handler's PDF rendering so email and download always match.
type EmailHandler struct {
	DB     *gorm.DB
	Docs   *DocumentHandler
	Mailer *mail.Mailer
}

func NewEmailHandler(db *gorm.DB, docs *DocumentHandler, mailer *mail.Mailer) *EmailHandler {
	return &EmailHandler{DB: db, Docs: docs, Mailer: mailer}
}

// Send: POST /documents/email?id=&to=
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if to == "" {
		to = strings.TrimSpace(r.FormValue("to"))
	}
	var doc models.Document
	if err := h.DB.Preload("Customer").First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_document", nil)
		return
	}
	if to == "" && doc.Customer != nil {
		to = doc.Customer.Email
	}
	v := validation.Violations{}
	if to == "" {
		v["to"] = "required"
	}
	validation.Email("to", to, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "email_missing_to", v)
		return
	}
	if !h.Mailer.Configured() {
		httpx.JSONError(w, http.StatusServiceUnavailable, "smtp_not_configured", nil)
		return
	}
	pdfBytes, filename, err := h.Docs.renderPDF(id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	info := doc.DocType.Info()
	subject := info.NameTH + " " + doc.DocNumber
	body := subject + "\n\nเอกสารแนบมากับอีเมลฉบับนี้"
	if err := h.Mailer.SendDocument(to, subject, body, filename, pdfBytes); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "email_send_failed", nil)
		return
	}
	writeAudit(h.DB, r, "Document", id, "email", to)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "sent", "to": to})
}
