package services

import (
	"context"
	"fmt"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"
)

type ReportService struct {
	saleRepo         domain.SaleRepository
	notificationRepo domain.NotificationRepository
	log              logger.Logger
	now              func() time.Time
}

func NewReportService(saleRepo domain.SaleRepository,
	notificationRepo domain.NotificationRepository, log logger.Logger) *ReportService {
	return &ReportService{
		saleRepo:         saleRepo,
		notificationRepo: notificationRepo,
		log:              log,
		now:              time.Now,
	}
}

// GenerateWeeklySummary aggregates the last seven days of finalized sales
// into a report notification.
func (s *ReportService) GenerateWeeklySummary(ctx context.Context) error {
	to := s.now()
	from := to.AddDate(0, 0, -7)

	summary, err := s.saleRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return err
	}

	notification := &domain.Notification{
		ID:   utils.GenerateID("notif"),
		Type: domain.NotificationReport,
		Message: fmt.Sprintf("Weekly summary %s to %s: %d sale(s), %.2f revenue",
			from.Format("2006-01-02"), to.Format("2006-01-02"),
			summary.SaleCount, summary.TotalRevenue),
		CreatedAt: to,
	}

	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return err
	}

	s.log.Info("Weekly summary generated", "sales", summary.SaleCount, "revenue", summary.TotalRevenue)
	return nil
}
