package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/models"
	"stockflow/internal/util"
)

// ListAuditLogs returns recent admin console and auth events, newest first.
// Optional ?action= and ?user_id= filters.
func ListAuditLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Order("created_at desc").Limit(util.ParseLimit(r, 200))
		if action := r.URL.Query().Get("action"); action != "" {
			q = q.Where("action = ?", action)
		}
		if uid := r.URL.Query().Get("user_id"); uid != "" {
			q = q.Where("user_id = ?", uid)
		}
		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, logs)
	}
}
