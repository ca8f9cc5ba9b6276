package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/models"
)

type dashboardRes struct {
	TotalStocks     int64 `json:"total_stocks"`
	PendingRequests int64 `json:"pending_requests"`
	LowStockItems   int64 `json:"low_stock_items"`
	TotalUsers      int64 `json:"total_users"`
}

// Dashboard computes the operator counts. Read-only.
func Dashboard(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res dashboardRes
		counts := []struct {
			dest  *int64
			query *gorm.DB
		}{
			{&res.TotalStocks, db.Model(&models.StockItem{})},
			{&res.PendingRequests, db.Model(&models.StockRequest{}).Where("status = ?", models.RequestPending)},
			{&res.LowStockItems, db.Model(&models.StockItem{}).Where("quantity <= ?", models.LowStockThreshold)},
			{&res.TotalUsers, db.Model(&models.User{})},
		}
		for _, c := range counts {
			if err := c.query.Count(c.dest).Error; err != nil {
				respondError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
		respondJSON(w, res)
	}
}
