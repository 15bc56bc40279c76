package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/packytong/Flowaccount/internal/models"
)

func TestCustomerCreateListSearch(t *testing.T) {
	db := setupDocTestDB(t)
	user, _ := seedHandlerFixtures(t, db)
	h := NewCustomerHandler(db)

	body := `{"name":"หจก. ค้าขายดี","tax_id":"0993000000001","email":"contact@kakaidee.th"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, authed(req, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Customer
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Branch != "สำนักงานใหญ่" {
		t.Fatalf("default branch missing: %q", created.Branch)
	}

	// search by tax id fragment
	req = httptest.NewRequest(http.MethodGet, "/customers?q=0993", nil)
	w = httptest.NewRecorder()
	h.List(w, authed(req, user.ID))
	var list struct {
		Items []models.Customer `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != created.ID {
		t.Fatalf("unexpected search result: %+v", list.Items)
	}
}

func TestCustomerValidation(t *testing.T) {
	db := setupDocTestDB(t)
	user, _ := seedHandlerFixtures(t, db)
	h := NewCustomerHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"","email":"broken"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, authed(req, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Details["name"] != "required" || resp.Details["email"] != "invalid_email" {
		t.Fatalf("unexpected violations: %+v", resp.Details)
	}
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	db := setupDocTestDB(t)
	user, customer := seedHandlerFixtures(t, db)
	h := NewCustomerHandler(db)
	idStr := strconv.Itoa(int(customer.ID))

	body := `{"name":"ชื่อใหม่","phone":"021234567"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/update?id="+idStr, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Update(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("update expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var reloaded models.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name != "ชื่อใหม่" || reloaded.Phone != "021234567" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	req = httptest.NewRequest(http.MethodPost, "/customers/delete?id="+idStr, nil)
	w = httptest.NewRecorder()
	h.Delete(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d", w.Code)
	}
	req = httptest.NewRequest(http.MethodPost, "/customers/delete?id="+idStr, nil)
	w = httptest.NewRecorder()
	h.Delete(w, authed(req, user.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404 got %d", w.Code)
	}
}
