package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/packytong/Flowaccount/internal/httpx"
	"github.com/packytong/Flowaccount/internal/models"
	"github.com/packytong/Flowaccount/internal/validation"

	"gorm.io/gorm"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{DB: db}
}

// List: GET /customers?q= – name/tax id search, used by the document form
// autocomplete, so it always answers JSON.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	dbq := h.DB.Model(&models.Customer{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR tax_id LIKE ?", like, "%"+q+"%")
	}
	var customers []models.Customer
	if err := dbq.Order("name").Limit(limit).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers})
}

type customerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
	Branch  string `json:"branch"`
	Email   string `json:"email"`
}

func decodeCustomerRequest(r *http.Request) (*customerRequest, error) {
	var req customerRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	req.Name = r.Form.Get("name")
	req.Address = r.Form.Get("address")
	req.Phone = r.Form.Get("phone")
	req.TaxID = r.Form.Get("tax_id")
	req.Branch = r.Form.Get("branch")
	req.Email = r.Form.Get("email")
	return &req, nil
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCustomerRequest(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Email("email", req.Email, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c := models.Customer{
		Name: req.Name, Address: req.Address, Phone: req.Phone,
		TaxID: req.TaxID, Email: req.Email,
	}
	if req.Branch != "" {
		c.Branch = req.Branch
	}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", nil)
		return
	}
	writeAudit(h.DB, r, "Customer", c.ID, "create", c.Name)
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /customers/update?id=
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	req, err := decodeCustomerRequest(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.Email("email", req.Email, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var c models.Customer
	if err := h.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		return
	}
	c.Name = req.Name
	c.Address = req.Address
	c.Phone = req.Phone
	c.TaxID = req.TaxID
	c.Email = req.Email
	if req.Branch != "" {
		c.Branch = req.Branch
	}
	if err := h.DB.Save(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_customer", nil)
		return
	}
	writeAudit(h.DB, r, "Customer", c.ID, "update", c.Name)
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /customers/delete?id= – documents keep their customer_id
// pointing at the removed row; display code treats a missing customer as blank.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	res := h.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_customer", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeAudit(h.DB, r, "Customer", id, "delete", "")
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
