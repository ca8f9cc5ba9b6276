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
	"stockflow/internal/workflow"
)

// ListStocks is the public catalog. Supports ?category= and ?q= filters.
func ListStocks(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Order("created_at desc")
		if cat := r.URL.Query().Get("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		if term := r.URL.Query().Get("q"); term != "" {
			like := "%" + term + "%"
			q = q.Where("name ILIKE ? OR code ILIKE ?", like, like)
		}
		var stocks []models.StockItem
		if err := q.Limit(util.ParseLimit(r, 100)).Find(&stocks).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, stocks)
	}
}

func GetStock(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var s models.StockItem
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		respondJSON(w, s)
	}
}

type stockReq struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
}

func CreateStock(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stockReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Code = strings.TrimSpace(req.Code)
		req.Name = strings.TrimSpace(req.Name)
		if req.Code == "" || req.Name == "" {
			respondError(w, http.StatusBadRequest, "code and name required")
			return
		}
		if req.Quantity < 0 {
			respondError(w, http.StatusBadRequest, "quantity cannot be negative")
			return
		}
		adminID := auth.Subject(r.Context())
		s := models.StockItem{
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Quantity:    req.Quantity,
			Category:    req.Category,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			if s.Quantity > 0 {
				// Initial stock shows up in the journal like any other addition.
				return tx.Create(&models.StockHistory{
					StockID:    s.ID,
					UserID:     &adminID,
					ChangeType: models.ChangeAdded,
					Quantity:   s.Quantity,
					Note:       "initial stock",
				}).Error
			}
			return nil
		})
		if err != nil {
			if isDuplicate(err) {
				respondError(w, http.StatusBadRequest, "stock code already exists")
				return
			}
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "STOCK_CREATE",
			Metadata: models.Meta(map[string]any{"stock_id": s.ID, "code": s.Code}),
		}).Error
		respondJSON(w, s)
	}
}

// UpdateStock edits descriptive fields only. Quantity moves exclusively
// through the adjustment and approval flows.
func UpdateStock(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Code        *string `json:"code"`
			Name        *string `json:"name"`
			Description *string `json:"description"`
			ImageURL    *string `json:"image_url"`
			Category    *string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var s models.StockItem
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		if req.Code != nil {
			s.Code = strings.TrimSpace(*req.Code)
		}
		if req.Name != nil {
			s.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.ImageURL != nil {
			s.ImageURL = *req.ImageURL
		}
		if req.Category != nil {
			s.Category = *req.Category
		}
		if s.Code == "" || s.Name == "" {
			respondError(w, http.StatusBadRequest, "code and name required")
			return
		}
		s.UpdatedAt = time.Now()
		if err := db.Save(&s).Error; err != nil {
			if isDuplicate(err) {
				respondError(w, http.StatusBadRequest, "stock code already exists")
				return
			}
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, s)
	}
}

func DeleteStock(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var s models.StockItem
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		if err := db.Delete(&s).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		adminID := auth.Subject(r.Context())
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "STOCK_DELETE",
			Metadata: models.Meta(map[string]any{"stock_id": s.ID, "code": s.Code}),
		}).Error
		respondJSON(w, map[string]any{"deleted": true})
	}
}

func AdjustStockQuantity(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			ChangeType string `json:"change_type"`
			Quantity   int    `json:"quantity"`
			Comment    string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		adminID := auth.Subject(r.Context())
		stock, err := workflow.AdjustQuantity(r.Context(), db, id, req.ChangeType, req.Quantity, strings.TrimSpace(req.Comment), &adminID)
		if err != nil {
			respondWorkflowError(w, err)
			return
		}
		lg.Infow("stock adjusted", "stock_id", stock.ID, "change_type", req.ChangeType, "quantity", req.Quantity, "admin_id", adminID)
		_ = db.Create(&models.AuditLog{
			UserID: &adminID, Action: "STOCK_ADJUST",
			Metadata: models.Meta(map[string]any{"stock_id": stock.ID, "change_type": req.ChangeType, "quantity": req.Quantity}),
		}).Error
		respondJSON(w, stock)
	}
}

func StockHistoryList(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var s models.StockItem
		if err := db.First(&s, "id = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "not found")
			return
		}
		var entries []models.StockHistory
		if err := db.Where("stock_id = ?", id).Order("created_at desc").Limit(util.ParseLimit(r, 200)).Find(&entries).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, entries)
	}
}
