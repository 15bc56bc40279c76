package main

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/packytong/Flowaccount/internal/auth"
	"github.com/packytong/Flowaccount/internal/config"
	"github.com/packytong/Flowaccount/internal/middleware"
	"github.com/packytong/Flowaccount/internal/models"
	"github.com/packytong/Flowaccount/internal/server"
	"github.com/packytong/Flowaccount/internal/view"

	"gorm.io/gorm"
)

// typeCard is one dashboard tile: a document type with its count, total
// issued amount, and display metadata.
type typeCard struct {
	Type  models.DocType
	Info  models.DocTypeInfo
	Count int64
	Total float64
}

// NewApp bundles the landing page, dashboard, static assets, and API routes.
func NewApp(dbConn *gorm.DB, cfg config.Config) http.Handler {
	rootAPI := auth.Middleware(server.New(dbConn, cfg))

	// serve static assets (CSS, JS, uploaded images) under /static/
	fs := http.FileServer(http.Dir("static"))
	staticHandler := http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		ext := filepath.Ext(name)
		// open file manually to compute ETag
		f, err := os.Open(filepath.Join("static", name))
		if err == nil {
			h := sha1.New()
			if _, cerr := io.Copy(h, f); cerr == nil {
				etag := fmt.Sprintf("\"%x\"", h.Sum(nil)[:8])
				w.Header().Set("ETag", etag)
				if match := r.Header.Get("If-None-Match"); match == etag {
					f.Close()
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
			f.Close()
		}
		if ext == ".css" {
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		} else if ext == ".js" {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		if os.Getenv("DEV") != "1" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		fs.ServeHTTP(w, r)
	}))

	baseHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) >= 8 && r.URL.Path[:8] == "/static/" {
			staticHandler.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/dashboard" {
			uid := sessionUser(r)
			if uid == 0 {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			data := map[string]any{"Year": time.Now().Year()}
			popFlash(w, r, data)
			var company models.Company
			if err := dbConn.First(&company).Error; err == nil {
				data["Company"] = company
			}
			var user models.User
			if err := dbConn.First(&user, uid).Error; err == nil {
				data["User"] = user
			}
			cards := make([]typeCard, 0, len(models.AllDocTypes()))
			for _, t := range models.AllDocTypes() {
				var n int64
				dbConn.Model(&models.Document{}).Where("doc_type = ?", t).Count(&n)
				var sum float64
				dbConn.Model(&models.Document{}).Where("doc_type = ?", t).
					Select("COALESCE(sum(grand_total), 0)").Scan(&sum)
				cards = append(cards, typeCard{Type: t, Info: t.Info(), Count: n, Total: sum})
			}
			data["Cards"] = cards
			var customerCount int64
			dbConn.Model(&models.Customer{}).Count(&customerCount)
			data["CustomerCount"] = customerCount
			var recent []models.Document
			dbConn.Preload("Customer").Order("created_at desc").Limit(10).Find(&recent)
			data["RecentDocuments"] = recent
			if err := view.Render(w, r, "dashboard.html", data); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "template render error: %v", err)
			}
			return
		}
		if r.URL.Path == "/" {
			if sessionUser(r) != 0 {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			data := map[string]any{}
			popFlash(w, r, data)
			if err := view.Render(w, r, "index.html", data); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				if _, werr := w.Write([]byte("render error")); werr != nil {
					_ = werr
				}
			}
			return
		}
		// Friendly alias kept from earlier installs
		if r.URL.Path == "/settings" {
			http.Redirect(w, r, "/company", http.StatusSeeOther)
			return
		}
		rootAPI.ServeHTTP(w, r)
	})
	return middleware.Prefs(baseHandler)
}

// sessionUser resolves the user id from context or directly from the cookie.
func sessionUser(r *http.Request) uint {
	if uid, ok := auth.UserIDFromContext(r.Context()); ok && uid != 0 {
		return uid
	}
	if uid, ok := auth.ParseSession(r); ok {
		return uid
	}
	return 0
}

// popFlash moves the flash cookie, if any, into the template data and clears it.
func popFlash(w http.ResponseWriter, r *http.Request, data map[string]any) {
	c, err := r.Cookie("flash")
	if err != nil {
		return
	}
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		data["Flash"] = dec
	} else {
		data["Flash"] = c.Value
	}
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
}
