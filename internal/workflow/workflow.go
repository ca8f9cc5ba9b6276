// Package workflow holds the request-approval and quantity-adjustment flow.
// Every mutating operation runs in a single transaction with the stock row
// locked FOR UPDATE, so concurrent approvals cannot drive quantity negative
// and a failed history insert never leaves a half-applied change.
package workflow

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockflow/internal/models"
)

// SignedDelta translates an adjustment into a signed quantity change.
// qty is the raw magnitude; the sign comes from changeType alone.
func SignedDelta(changeType string, qty int) (int, error) {
	if qty <= 0 {
		return 0, invalid("quantity must be greater than zero")
	}
	switch changeType {
	case models.ChangeAdded:
		return qty, nil
	case models.ChangeRemoved:
		return -qty, nil
	default:
		return 0, invalid("change_type must be 'added' or 'removed'")
	}
}

func lockedStock(tx *gorm.DB, stockID string) (*models.StockItem, error) {
	var stock models.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stock, "id = ?", stockID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// ApproveRequest moves a pending request to approved, decrementing the stock
// item and journaling the change. Availability is re-checked here even though
// it was checked at creation time; stock may have moved in between.
func ApproveRequest(ctx context.Context, db *gorm.DB, requestID, adminID, notes string) (*models.StockRequest, error) {
	var req models.StockRequest
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Decided() {
			return ErrAlreadyDecided
		}
		stock, err := lockedStock(tx, req.StockID)
		if err != nil {
			return err
		}
		if stock.Quantity < req.Quantity {
			return ErrInsufficientStock
		}
		if err := tx.Model(stock).Update("quantity", stock.Quantity-req.Quantity).Error; err != nil {
			return err
		}
		// History references the requester, not the approver.
		hist := models.StockHistory{
			StockID:    stock.ID,
			UserID:     &req.UserID,
			RequestID:  &req.ID,
			ChangeType: models.ChangeRequestApproved,
			Quantity:   -req.Quantity,
			Note:       notes,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}
		req.Status = models.RequestApproved
		req.AdminNotes = notes
		req.ApprovedBy = &adminID
		req.UpdatedAt = time.Now()
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// DenyRequest moves a pending request to denied. No stock or history mutation.
func DenyRequest(ctx context.Context, db *gorm.DB, requestID, adminID, notes string) (*models.StockRequest, error) {
	var req models.StockRequest
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.Decided() {
			return ErrAlreadyDecided
		}
		req.Status = models.RequestDenied
		req.AdminNotes = notes
		req.ApprovedBy = &adminID
		req.UpdatedAt = time.Now()
		return tx.Save(&req).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// AdjustQuantity applies a manual stock correction. A comment is mandatory;
// there are no silent adjustments.
func AdjustQuantity(ctx context.Context, db *gorm.DB, stockID, changeType string, qty int, comment string, actorID *string) (*models.StockItem, error) {
	delta, err := SignedDelta(changeType, qty)
	if err != nil {
		return nil, err
	}
	if comment == "" {
		return nil, invalid("comment is required")
	}
	var stock *models.StockItem
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock, err = lockedStock(tx, stockID)
		if err != nil {
			return err
		}
		newQty := stock.Quantity + delta
		if newQty < 0 {
			return ErrInvalidAdjustment
		}
		if err := tx.Model(stock).Update("quantity", newQty).Error; err != nil {
			return err
		}
		hist := models.StockHistory{
			StockID:    stock.ID,
			UserID:     actorID,
			ChangeType: changeType,
			Quantity:   delta,
			Note:       comment,
		}
		return tx.Create(&hist).Error
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// CreateRequest records a pending request. The availability check is advisory:
// nothing is reserved, stock only moves at approval time, so overlapping
// requests can race and the first approval wins.
func CreateRequest(ctx context.Context, db *gorm.DB, userID, stockID string, qty int, reason string) (*models.StockRequest, error) {
	if qty <= 0 {
		return nil, invalid("quantity must be greater than zero")
	}
	var stock models.StockItem
	if err := db.WithContext(ctx).First(&stock, "id = ?", stockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if stock.Quantity < qty {
		return nil, ErrInsufficientStock
	}
	req := models.StockRequest{
		UserID:   userID,
		StockID:  stockID,
		Quantity: qty,
		Reason:   reason,
		Status:   models.RequestPending,
	}
	if err := db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
