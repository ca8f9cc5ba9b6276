package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/auth"
	"stockflow/internal/models"
	"stockflow/internal/util"
)

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var users []models.User
		if err := db.Order("created_at desc").Limit(util.ParseLimit(r, 200)).Find(&users).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, users)
	}
}

// CreateUser is the admin path; unlike self-signup the account starts active.
func CreateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			IsAdmin   bool   `json:"is_admin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "email and password required")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		u := models.User{
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsAdmin:      req.IsAdmin,
			IsActive:     true,
		}
		if err := db.Create(&u).Error; err != nil {
			if isDuplicate(err) {
				respondError(w, http.StatusBadRequest, "email already registered")
				return
			}
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		adminID := auth.Subject(r.Context())
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "USER_CREATE",
			Metadata: models.Meta(map[string]any{"created_user_id": u.ID, "email": u.Email, "is_admin": u.IsAdmin}),
		}).Error
		respondJSON(w, map[string]any{"id": u.ID})
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Email     *string `json:"email"`
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			IsActive  *bool   `json:"is_active"`
			IsAdmin   *bool   `json:"is_admin"`
			Password  *string `json:"password,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var u models.User
		if err := db.First(&u, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(strings.ToLower(*req.Email))
		}
		if req.FirstName != nil {
			u.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			u.LastName = *req.LastName
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if req.IsAdmin != nil {
			u.IsAdmin = *req.IsAdmin
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				// bcrypt rejects passwords over 72 bytes; never persist an empty hash.
				respondError(w, http.StatusBadRequest, "invalid password")
				return
			}
			u.PasswordHash = hash
		}
		u.UpdatedAt = time.Now()
		if err := db.Save(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		adminID := auth.Subject(r.Context())
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "USER_UPDATE",
			Metadata: models.Meta(map[string]any{"updated_user_id": u.ID}),
		}).Error
		respondJSON(w, map[string]any{"updated": true})
	}
}

// DeleteUser deactivates. Users are never hard-deleted so history and
// requests keep a valid reference.
func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var u models.User
		if err := db.First(&u, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		if err := db.Model(&u).Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		adminID := auth.Subject(r.Context())
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "USER_DEACTIVATE",
			Metadata: models.Meta(map[string]any{"deactivated_user_id": u.ID}),
		}).Error
		respondJSON(w, map[string]any{"deactivated": true})
	}
}
