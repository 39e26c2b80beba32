package domain

import (
	"math"
	"time"
)

type Drug struct {
	ID         string
	Name       string
	Brand      string
	Quantity   int
	Price      float64
	ExpiryDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DaysUntilExpiry is negative once the expiry date has passed. The count
// is floored, not truncated, so a drug a few hours past expiry reports -1
// rather than 0.
func (d *Drug) DaysUntilExpiry(now time.Time) int {
	return int(math.Floor(d.ExpiryDate.Sub(now).Hours() / 24))
}

type ExpiryTier string

const (
	TierExpired  ExpiryTier = "expired"
	TierCritical ExpiryTier = "critical"
	TierWarning  ExpiryTier = "warning"
	TierNotice   ExpiryTier = "notice"
)

// ClassifyExpiry maps days-until-expiry onto a tier. Boundaries are
// inclusive at 7 and 30 days; only expired, critical and warning drugs
// generate notifications.
func ClassifyExpiry(daysUntilExpiry int) ExpiryTier {
	switch {
	case daysUntilExpiry < 0:
		return TierExpired
	case daysUntilExpiry <= 7:
		return TierCritical
	case daysUntilExpiry <= 30:
		return TierWarning
	default:
		return TierNotice
	}
}

// Notifiable reports whether drugs in this tier generate a notification.
func (t ExpiryTier) Notifiable() bool {
	return t == TierExpired || t == TierCritical || t == TierWarning
}

type Sale struct {
	ID            string
	DrugID        string
	CustomerID    string
	Quantity      int
	TotalPrice    float64
	Finalized     bool
	ExpiryMinutes int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpiresAt is the moment an unfinalized sale's stock reservation lapses.
func (s *Sale) ExpiresAt() time.Time {
	return s.CreatedAt.Add(time.Duration(s.ExpiryMinutes) * time.Minute)
}

// Expired reports whether the sale is still unfinalized past its reservation window.
func (s *Sale) Expired(now time.Time) bool {
	return !s.Finalized && s.ExpiresAt().Before(now)
}

type Pharmacy struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Branch struct {
	ID         string
	PharmacyID string
	Name       string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DrugBranch is the join record assigning a drug to a branch.
type DrugBranch struct {
	DrugID    string
	BranchID  string
	CreatedAt time.Time
}

type NotificationType string

const (
	NotificationExpiry   NotificationType = "expiry"
	NotificationLowStock NotificationType = "low_stock"
	NotificationReport   NotificationType = "report"
)

type Notification struct {
	ID        string
	Type      NotificationType
	Tier      ExpiryTier
	DrugID    string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Resource  string
	Details   string
	CreatedAt time.Time
}

type UserActivity struct {
	ID        string
	UserID    string
	SessionID string
	Action    string
	CreatedAt time.Time
}

type UserSession struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredSaleStats is a read-only projection over the current sale records
// plus the lifetime cleanup counter.
type ExpiredSaleStats struct {
	ExpiredSalesCount int64      `json:"expiredSalesCount"`
	TotalValue        float64    `json:"totalValue"`
	TotalCleaned      int64      `json:"totalCleaned"`
	LastCleanupTime   *time.Time `json:"lastCleanupTime,omitempty"`
	OldestExpired     *time.Time `json:"oldestExpired,omitempty"`
}

// SalesSummary aggregates finalized sales over a reporting window.
type SalesSummary struct {
	SaleCount    int64
	TotalRevenue float64
	From         time.Time
	To           time.Time
}
