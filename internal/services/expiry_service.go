package services

import (
	"context"
	"fmt"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"
)

const (
	// Drugs expiring beyond this horizon are not notified.
	expiryNotifyWindowDays = 30

	notificationRetentionDays = 30
)

// ExpiringDrug annotates a drug with its classification for the expiry
// tracking endpoint.
type ExpiringDrug struct {
	Drug            *domain.Drug      `json:"drug"`
	DaysUntilExpiry int               `json:"days_until_expiry"`
	Tier            domain.ExpiryTier `json:"tier"`
}

type ExpiryService struct {
	drugRepo         domain.DrugRepository
	notificationRepo domain.NotificationRepository
	log              logger.Logger
	now              func() time.Time
}

func NewExpiryService(drugRepo domain.DrugRepository,
	notificationRepo domain.NotificationRepository, log logger.Logger) *ExpiryService {
	return &ExpiryService{
		drugRepo:         drugRepo,
		notificationRepo: notificationRepo,
		log:              log,
		now:              time.Now,
	}
}

// GetExpiringDrugs returns every drug inside the notification window,
// classified by tier.
func (s *ExpiryService) GetExpiringDrugs(ctx context.Context) ([]*ExpiringDrug, error) {
	now := s.now()

	// Fetch one day past the window so day-30 drugs survive truncation.
	horizon := now.AddDate(0, 0, expiryNotifyWindowDays+1)
	drugs, err := s.drugRepo.GetDrugsExpiringBefore(ctx, horizon)
	if err != nil {
		return nil, err
	}

	var expiring []*ExpiringDrug
	for _, drug := range drugs {
		days := drug.DaysUntilExpiry(now)
		tier := domain.ClassifyExpiry(days)
		if !tier.Notifiable() {
			continue
		}

		expiring = append(expiring, &ExpiringDrug{
			Drug:            drug,
			DaysUntilExpiry: days,
			Tier:            tier,
		})
	}

	return expiring, nil
}

// GenerateExpiryNotifications creates one notification per qualifying drug
// and returns the created count.
func (s *ExpiryService) GenerateExpiryNotifications(ctx context.Context) (int64, error) {
	expiring, err := s.GetExpiringDrugs(ctx)
	if err != nil {
		return 0, err
	}

	var created int64
	for _, entry := range expiring {
		notification := &domain.Notification{
			ID:        utils.GenerateID("notif"),
			Type:      domain.NotificationExpiry,
			Tier:      entry.Tier,
			DrugID:    entry.Drug.ID,
			Message:   expiryMessage(entry),
			CreatedAt: s.now(),
		}

		if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
			return created, err
		}
		created++
	}

	s.log.Info("Generated expiry notifications", "count", created)
	return created, nil
}

// CleanupOldNotifications deletes read notifications past the retention
// window. Running it twice with no new old-and-read notifications deletes
// zero the second time.
func (s *ExpiryService) CleanupOldNotifications(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -notificationRetentionDays)
	deleted, err := s.notificationRepo.DeleteOldRead(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info("Cleaned up old notifications", "deleted", deleted)
	return deleted, nil
}

func expiryMessage(entry *ExpiringDrug) string {
	switch entry.Tier {
	case domain.TierExpired:
		return fmt.Sprintf("%s expired %d day(s) ago", entry.Drug.Name, -entry.DaysUntilExpiry)
	default:
		return fmt.Sprintf("%s expires in %d day(s)", entry.Drug.Name, entry.DaysUntilExpiry)
	}
}
