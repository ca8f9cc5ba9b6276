package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/auth"
	"stockflow/internal/config"
	"stockflow/internal/models"
)

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles self-signup. Accounts start inactive; an admin has to
// activate them before login works.
func Register(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
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
			IsActive:     false,
		}
		if err := db.Create(&u).Error; err != nil {
			if isDuplicate(err) {
				respondError(w, http.StatusBadRequest, "email already registered")
				return
			}
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		_ = db.Create(&models.AuditLog{
			UserID: &u.ID, Action: "USER_REGISTER",
			Metadata: models.Meta(map[string]any{"email": u.Email}),
		}).Error
		respondJSON(w, map[string]any{"id": u.ID, "email": u.Email, "is_active": u.IsActive})
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var u models.User
		if err := db.First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if !u.IsActive {
			respondError(w, http.StatusForbidden, "account is not active")
			return
		}
		jti := uuid.NewString()
		sess := models.Session{JTI: jti, UserID: u.ID, ExpiresAt: time.Now().Add(cfg.JWTExpiresIn)}
		if err := db.Create(&sess).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		tok, err := auth.Sign([]byte(cfg.JWTSecret), cfg.JWTExpiresIn, u.ID, u.IsAdmin, jti)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		_ = db.Create(&models.AuditLog{UserID: &u.ID, Action: "LOGIN"}).Error
		respondJSON(w, map[string]any{"token": tok})
	}
}

func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := auth.FromContext(r.Context()).JWTID
		now := time.Now()
		_ = db.Model(&models.Session{}).Where("jti = ?", jti).Update("revoked_at", &now).Error
		respondJSON(w, map[string]any{"logged_out": true})
	}
}

func ChangePassword(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"current_password"`
			New     string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.New == "" {
			respondError(w, http.StatusBadRequest, "new password required")
			return
		}
		sub := auth.Subject(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", sub).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Current); err != nil {
			respondError(w, http.StatusForbidden, "current password does not match")
			return
		}
		hash, err := auth.HashPassword(req.New)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		u.PasswordHash = hash
		u.UpdatedAt = time.Now()
		if err := db.Save(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		_ = db.Create(&models.AuditLog{UserID: &u.ID, Action: "PASSWORD_CHANGE"}).Error
		respondJSON(w, map[string]any{"updated": true})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", sub).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		respondJSON(w, u)
	}
}
