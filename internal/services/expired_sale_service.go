package services

import (
	"context"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
)

// ExpiredSaleService reconciles unfinalized sales whose reservation window
// has lapsed: each cleaned sale has its reserved drug quantity restored and
// its record deleted. One aggregate expired-sales-cleaned event is emitted
// per batch, not one per sale.
type ExpiredSaleService struct {
	saleRepo   domain.SaleRepository
	drugRepo   domain.DrugRepository
	statsCache domain.CleanupStatsCache
	publisher  domain.EventPublisher
	log        logger.Logger
	now        func() time.Time
}

func NewExpiredSaleService(saleRepo domain.SaleRepository, drugRepo domain.DrugRepository,
	statsCache domain.CleanupStatsCache, publisher domain.EventPublisher,
	log logger.Logger) *ExpiredSaleService {
	return &ExpiredSaleService{
		saleRepo:   saleRepo,
		drugRepo:   drugRepo,
		statsCache: statsCache,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// CleanupExpired processes the batch of expired sales. Records are handled
// independently: a failure on one sale is logged and counted, and the rest
// of the batch still runs.
func (s *ExpiredSaleService) CleanupExpired(ctx context.Context) (int64, error) {
	now := s.now()

	sales, err := s.saleRepo.GetExpiredUnfinalized(ctx, now)
	if err != nil {
		return 0, err
	}

	var cleaned, failed int64
	for _, sale := range sales {
		if err := s.drugRepo.AdjustQuantity(ctx, sale.DrugID, sale.Quantity); err != nil {
			s.log.Error("Failed to restore drug quantity", "sale_id", sale.ID,
				"drug_id", sale.DrugID, "error", err)
			failed++
			continue
		}

		if err := s.saleRepo.DeleteSale(ctx, sale.ID); err != nil {
			s.log.Error("Failed to delete expired sale", "sale_id", sale.ID, "error", err)
			failed++
			continue
		}

		cleaned++
	}

	if cleaned > 0 {
		s.recordCleanup(ctx, cleaned, now)
	}

	if failed > 0 {
		s.log.Warn("Expired-sale cleanup finished with failures",
			"cleaned", cleaned, "failed", failed)
	}

	return cleaned, nil
}

// GetStats recomputes the snapshot on demand from current sale records
// plus the lifetime counter.
func (s *ExpiredSaleService) GetStats(ctx context.Context) (*domain.ExpiredSaleStats, error) {
	now := s.now()

	count, totalValue, oldest, err := s.saleRepo.GetExpiredStats(ctx, now)
	if err != nil {
		return nil, err
	}

	totalCleaned, err := s.statsCache.GetTotalCleaned(ctx)
	if err != nil {
		return nil, err
	}

	lastCleanup, err := s.statsCache.GetLastCleanupTime(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ExpiredSaleStats{
		ExpiredSalesCount: count,
		TotalValue:        totalValue,
		TotalCleaned:      totalCleaned,
		LastCleanupTime:   lastCleanup,
		OldestExpired:     oldest,
	}, nil
}

func (s *ExpiredSaleService) recordCleanup(ctx context.Context, cleaned int64, now time.Time) {
	if _, err := s.statsCache.IncrementTotalCleaned(ctx, cleaned); err != nil {
		s.log.Error("Failed to increment cleanup counter", "error", err)
	}
	if err := s.statsCache.SetLastCleanupTime(ctx, now); err != nil {
		s.log.Error("Failed to record cleanup time", "error", err)
	}

	event := &domain.ExpiredSalesCleanedEvent{Count: cleaned, Timestamp: now}
	if err := s.publisher.Publish(ctx, domain.EventExpiredSalesCleaned, event); err != nil {
		s.log.Error("Failed to publish cleanup event", "error", err)
	}

	s.log.Info("Cleaned up expired sales", "count", cleaned)
}
