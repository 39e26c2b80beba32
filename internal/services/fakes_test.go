package services

import (
	"context"
	"sync"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

// capturedEvent records one publisher call.
type capturedEvent struct {
	Event   string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, capturedEvent{Event: event, Payload: payload})
	return nil
}

func (p *fakePublisher) captured() []capturedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]capturedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// jobEvents filters out cron-status-updated snapshots.
func (p *fakePublisher) jobEvents() []capturedEvent {
	var out []capturedEvent
	for _, e := range p.captured() {
		if e.Event != domain.EventStatusUpdated {
			out = append(out, e)
		}
	}
	return out
}

type fakeDrugRepo struct {
	mu        sync.Mutex
	drugs     map[string]*domain.Drug
	adjustErr map[string]error
}

func newFakeDrugRepo() *fakeDrugRepo {
	return &fakeDrugRepo{
		drugs:     make(map[string]*domain.Drug),
		adjustErr: make(map[string]error),
	}
}

func (r *fakeDrugRepo) add(drug *domain.Drug) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drugs[drug.ID] = drug
}

func (r *fakeDrugRepo) CreateDrug(_ context.Context, drug *domain.Drug) error {
	r.add(drug)
	return nil
}

func (r *fakeDrugRepo) GetDrug(_ context.Context, drugID string) (*domain.Drug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drug, ok := r.drugs[drugID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return drug, nil
}

func (r *fakeDrugRepo) ListDrugs(_ context.Context) ([]*domain.Drug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Drug
	for _, d := range r.drugs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDrugRepo) UpdateDrug(_ context.Context, drug *domain.Drug) error {
	r.add(drug)
	return nil
}

func (r *fakeDrugRepo) DeleteDrug(_ context.Context, drugID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drugs, drugID)
	return nil
}

func (r *fakeDrugRepo) AdjustQuantity(_ context.Context, drugID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.adjustErr[drugID]; err != nil {
		return err
	}
	drug, ok := r.drugs[drugID]
	if !ok {
		return domain.ErrNotFound
	}
	drug.Quantity += delta
	return nil
}

func (r *fakeDrugRepo) GetDrugsExpiringBefore(_ context.Context, before time.Time) ([]*domain.Drug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Drug
	for _, d := range r.drugs {
		if d.ExpiryDate.Before(before) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDrugRepo) GetLowStockDrugs(_ context.Context, threshold int) ([]*domain.Drug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Drug
	for _, d := range r.drugs {
		if d.Quantity < threshold {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDrugRepo) AssignToBranch(_ context.Context, _, _ string) error   { return nil }
func (r *fakeDrugRepo) RemoveFromBranch(_ context.Context, _, _ string) error { return nil }
func (r *fakeDrugRepo) GetDrugsForBranch(_ context.Context, _ string) ([]*domain.Drug, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     map[string]*domain.Sale
	deleteErr map[string]error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:     make(map[string]*domain.Sale),
		deleteErr: make(map[string]error),
	}
}

func (r *fakeSaleRepo) add(sale *domain.Sale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[sale.ID] = sale
}

func (r *fakeSaleRepo) CreateSale(_ context.Context, sale *domain.Sale) error {
	r.add(sale)
	return nil
}

func (r *fakeSaleRepo) GetSale(_ context.Context, saleID string) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[saleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (r *fakeSaleRepo) ListSales(_ context.Context) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Sale
	for _, s := range r.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) FinalizeSale(_ context.Context, saleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[saleID]
	if !ok || sale.Finalized {
		return domain.ErrNotFound
	}
	sale.Finalized = true
	return nil
}

func (r *fakeSaleRepo) DeleteSale(_ context.Context, saleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.deleteErr[saleID]; err != nil {
		return err
	}
	if _, ok := r.sales[saleID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sales, saleID)
	return nil
}

func (r *fakeSaleRepo) GetExpiredUnfinalized(_ context.Context, now time.Time) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Sale
	for _, s := range r.sales {
		if s.Expired(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) GetExpiredStats(_ context.Context, now time.Time) (int64, float64, *time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	var total float64
	var oldest *time.Time
	for _, s := range r.sales {
		if !s.Expired(now) {
			continue
		}
		count++
		total += s.TotalPrice
		created := s.CreatedAt
		if oldest == nil || created.Before(*oldest) {
			oldest = &created
		}
	}
	return count, total, oldest, nil
}

func (r *fakeSaleRepo) GetSalesSummary(_ context.Context, from, to time.Time) (*domain.SalesSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &domain.SalesSummary{From: from, To: to}
	for _, s := range r.sales {
		if s.Finalized && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			summary.SaleCount++
			summary.TotalRevenue += s.TotalPrice
		}
	}
	return summary, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) ListNotifications(_ context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.notifications {
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.Read = true
	return nil
}

func (r *fakeNotificationRepo) DeleteOldRead(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, n := range r.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeStatsCache struct {
	mu           sync.Mutex
	totalCleaned int64
	lastCleanup  *time.Time
}

func (c *fakeStatsCache) IncrementTotalCleaned(_ context.Context, n int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalCleaned += n
	return c.totalCleaned, nil
}

func (c *fakeStatsCache) GetTotalCleaned(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCleaned, nil
}

func (c *fakeStatsCache) SetLastCleanupTime(_ context.Context, t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastCleanup = &t
	return nil
}

func (c *fakeStatsCache) GetLastCleanupTime(_ context.Context) (*time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastCleanup, nil
}
