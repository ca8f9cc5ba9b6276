package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/auth"
	"stockflow/internal/models"
	"stockflow/internal/util"
	"stockflow/internal/workflow"
)

func CreateRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StockID  string `json:"stock_id"`
			Quantity int    `json:"quantity"`
			Reason   string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID := auth.Subject(r.Context())
		sr, err := workflow.CreateRequest(r.Context(), db, userID, req.StockID, req.Quantity, strings.TrimSpace(req.Reason))
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		respondJSON(w, sr)
	}
}

// ListRequests returns the caller's own requests. Admins can pass ?all=1
// to see everyone's, optionally filtered by ?status=.
func ListRequests(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Order("created_at desc").Limit(util.ParseLimit(r, 200))
		all := r.URL.Query().Get("all") == "1"
		if !all || !auth.IsAdmin(r.Context()) {
			q = q.Where("user_id = ?", auth.Subject(r.Context()))
		}
		if status := r.URL.Query().Get("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var reqs []models.StockRequest
		if err := q.Find(&reqs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, reqs)
	}
}

func GetRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var sr models.StockRequest
		if err := db.First(&sr, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		// Owners and admins only.
		if sr.UserID != auth.Subject(r.Context()) && !auth.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}
		respondJSON(w, sr)
	}
}

type decisionReq struct {
	AdminNotes string `json:"admin_notes"`
}

func ApproveRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req decisionReq
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		adminID := auth.Subject(r.Context())
		sr, err := workflow.ApproveRequest(r.Context(), db, id, adminID, req.AdminNotes)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		lg.Infow("request approved", "request_id", sr.ID, "stock_id", sr.StockID, "quantity", sr.Quantity, "admin_id", adminID)
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "REQUEST_APPROVE",
			Metadata: models.Meta(map[string]any{"request_id": sr.ID, "stock_id": sr.StockID, "quantity": sr.Quantity}),
		}).Error
		respondJSON(w, sr)
	}
}

func DenyRequest(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req decisionReq
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		adminID := auth.Subject(r.Context())
		sr, err := workflow.DenyRequest(r.Context(), db, id, adminID, req.AdminNotes)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "REQUEST_DENY",
			Metadata: models.Meta(map[string]any{"request_id": sr.ID}),
		}).Error
		respondJSON(w, sr)
	}
}
