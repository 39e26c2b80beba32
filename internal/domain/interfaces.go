package domain

import (
	"context"
	"time"
)

// Repository interfaces
type DrugRepository interface {
	CreateDrug(ctx context.Context, drug *Drug) error
	GetDrug(ctx context.Context, drugID string) (*Drug, error)
	ListDrugs(ctx context.Context) ([]*Drug, error)
	UpdateDrug(ctx context.Context, drug *Drug) error
	DeleteDrug(ctx context.Context, drugID string) error
	// AdjustQuantity applies a relative stock change as a single atomic update.
	AdjustQuantity(ctx context.Context, drugID string, delta int) error
	GetDrugsExpiringBefore(ctx context.Context, before time.Time) ([]*Drug, error)
	GetLowStockDrugs(ctx context.Context, threshold int) ([]*Drug, error)
	AssignToBranch(ctx context.Context, drugID, branchID string) error
	RemoveFromBranch(ctx context.Context, drugID, branchID string) error
	GetDrugsForBranch(ctx context.Context, branchID string) ([]*Drug, error)
}

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *Sale) error
	GetSale(ctx context.Context, saleID string) (*Sale, error)
	ListSales(ctx context.Context) ([]*Sale, error)
	FinalizeSale(ctx context.Context, saleID string) error
	DeleteSale(ctx context.Context, saleID string) error
	GetExpiredUnfinalized(ctx context.Context, now time.Time) ([]*Sale, error)
	GetExpiredStats(ctx context.Context, now time.Time) (count int64, totalValue float64, oldest *time.Time, err error)
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *Notification) error
	ListNotifications(ctx context.Context, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	// DeleteOldRead removes read notifications created before the cutoff.
	DeleteOldRead(ctx context.Context, cutoff time.Time) (int64, error)
}

type MaintenanceRepository interface {
	InsertAuditLog(ctx context.Context, log *AuditLog) error
	DeleteAuditLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	RecordActivity(ctx context.Context, activity *UserActivity) error
	DeleteActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type PharmacyRepository interface {
	CreatePharmacy(ctx context.Context, pharmacy *Pharmacy) error
	GetPharmacy(ctx context.Context, pharmacyID string) (*Pharmacy, error)
	ListPharmacies(ctx context.Context) ([]*Pharmacy, error)
	CreateBranch(ctx context.Context, branch *Branch) error
	GetBranch(ctx context.Context, branchID string) (*Branch, error)
	ListBranches(ctx context.Context, pharmacyID string) ([]*Branch, error)
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}

// Event interfaces
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

type EventHandler func(event string, payload []byte) error

type EventSubscriber interface {
	SubscribeToJobEvents(ctx context.Context, handler EventHandler) error
}

// Cache interfaces
type CleanupStatsCache interface {
	IncrementTotalCleaned(ctx context.Context, n int64) (int64, error)
	GetTotalCleaned(ctx context.Context) (int64, error)
	SetLastCleanupTime(ctx context.Context, t time.Time) error
	GetLastCleanupTime(ctx context.Context) (*time.Time, error)
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	ClientID() string
}

type ConnectionManager interface {
	RegisterConnection(clientID string, conn WebSocketConnection) error
	UnregisterConnection(clientID string) error
	Broadcast(message interface{}) error
	CloseAll() error
}
