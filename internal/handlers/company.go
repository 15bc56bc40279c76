package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/packytong/Flowaccount/internal/httpx"
	"github.com/packytong/Flowaccount/internal/middleware"
	"github.com/packytong/Flowaccount/internal/models"
	"github.com/packytong/Flowaccount/internal/view"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyHandler manages the single-row company profile and its uploaded
// logo/signature images.
type CompanyHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewCompanyHandler(db *gorm.DB, uploadDir string) *CompanyHandler {
	return &CompanyHandler{DB: db, UploadDir: uploadDir}
}

func (h *CompanyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *CompanyHandler) get(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_company", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, company)
		return
	}
	_ = view.Render(w, r, "company.html", map[string]any{"Company": company})
}

func (h *CompanyHandler) save(w http.ResponseWriter, r *http.Request) {
	// 10 MiB covers a logo and a signature with headroom
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_payload", nil)
			return
		}
	}
	var company models.Company
	if err := h.DB.First(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_company", nil)
		return
	}
	company.Name = r.FormValue("name")
	company.Address = r.FormValue("address")
	company.Phone = r.FormValue("phone")
	company.Email = r.FormValue("email")
	company.TaxID = r.FormValue("tax_id")
	if b := r.FormValue("branch"); b != "" {
		company.Branch = b
	}
	if path, err := h.saveUpload(r, "logo"); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "upload_failed", nil)
		return
	} else if path != "" {
		company.LogoPath = path
	}
	if path, err := h.saveUpload(r, "signature"); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "upload_failed", nil)
		return
	} else if path != "" {
		company.SignaturePath = path
	}
	if err := h.DB.Save(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_company", nil)
		return
	}
	writeAudit(h.DB, r, "Company", company.ID, "update", company.Name)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, company)
		return
	}
	middleware.Flash(w, r, "company_saved")
	http.Redirect(w, r, "/company", http.StatusSeeOther)
}

// saveUpload stores one multipart image under the upload dir with a random
// name, keeping only the original extension. Returns "" when the field is absent.
func (h *CompanyHandler) saveUpload(r *http.Request, field string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", os.ErrInvalid
	}
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dst := filepath.Join(h.UploadDir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return dst, nil
}
