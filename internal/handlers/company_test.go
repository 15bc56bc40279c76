package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/packytong/Flowaccount/internal/models"
)

func TestCompanyGetAndSave(t *testing.T) {
	db := setupDocTestDB(t)
	user, _ := seedHandlerFixtures(t, db)
	h := NewCompanyHandler(db, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Handle(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("get expected 200 got %d", w.Code)
	}

	form := "name=" + "บริษัท ใหม่ จำกัด" + "&tax_id=0105540000999&branch=สาขา 1"
	req = httptest.NewRequest(http.MethodPost, "/company", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	h.Handle(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("save expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var company models.Company
	if err := db.First(&company).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if company.Name != "บริษัท ใหม่ จำกัด" || company.TaxID != "0105540000999" {
		t.Fatalf("not persisted: %+v", company)
	}
}

func TestCompanyLogoUpload(t *testing.T) {
	db := setupDocTestDB(t)
	user, _ := seedHandlerFixtures(t, db)
	dir := t.TempDir()
	h := NewCompanyHandler(db, dir)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "บริษัท โลโก้ จำกัด")
	fw, err := mw.CreateFormFile("logo", "logo.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	// minimal png header is enough; content is not validated
	if _, err := fw.Write([]byte("\x89PNG\r\n\x1a\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/company", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Handle(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var company models.Company
	_ = json.Unmarshal(w.Body.Bytes(), &company)
	if company.LogoPath == "" || !strings.HasSuffix(company.LogoPath, ".png") {
		t.Fatalf("logo path = %q", company.LogoPath)
	}
	if _, err := os.Stat(company.LogoPath); err != nil {
		t.Fatalf("logo file missing: %v", err)
	}
}

func TestCompanyRejectsBadUploadExtension(t *testing.T) {
	db := setupDocTestDB(t)
	user, _ := seedHandlerFixtures(t, db)
	h := NewCompanyHandler(db, t.TempDir())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("logo", "evil.sh")
	_, _ = fw.Write([]byte("#!/bin/sh"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/company", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Handle(w, authed(req, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
