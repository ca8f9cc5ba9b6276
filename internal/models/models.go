package models

import "time"

// Stock request statuses. A request is decided at most once:
// pending -> approved or pending -> denied.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDenied   = "denied"
)

// Stock history change types.
const (
	ChangeAdded           = "added"
	ChangeRemoved         = "removed"
	ChangeRequestApproved = "request_approved"
)

// LowStockThreshold marks items for the dashboard alert. Display-only,
// not an enforced business rule.
const LowStockThreshold = 5

type User struct {
	ID           string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StockItem struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	Category    string    `gorm:"index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LowStock reports whether the item should show up in dashboard alerts.
func (s StockItem) LowStock() bool { return s.Quantity <= LowStockThreshold }

type StockRequest struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	StockID    string    `gorm:"type:uuid;index;not null" json:"stock_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Reason     string    `json:"reason"`
	Status     string    `gorm:"not null;default:pending;index" json:"status"`
	AdminNotes string    `json:"admin_notes"`
	ApprovedBy *string   `gorm:"type:uuid" json:"approved_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Decided reports whether the request already reached a terminal status.
func (r StockRequest) Decided() bool { return r.Status != RequestPending }

// StockHistory is an append-only journal of quantity-affecting events.
// Quantity is always a signed delta; ChangeType tags where it came from.
type StockHistory struct {
	ID         string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StockID    string    `gorm:"type:uuid;index;not null" json:"stock_id"`
	UserID     *string   `gorm:"type:uuid" json:"user_id,omitempty"`
	RequestID  *string   `gorm:"type:uuid" json:"request_id,omitempty"`
	ChangeType string    `gorm:"not null" json:"change_type"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:uuid" json:"user_id,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
