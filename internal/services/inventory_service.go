package services

import (
	"context"
	"fmt"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"
)

// InventoryService owns the drug catalog and the branch assignments.
type InventoryService struct {
	drugRepo          domain.DrugRepository
	notificationRepo  domain.NotificationRepository
	lowStockThreshold int
	log               logger.Logger
}

func NewInventoryService(drugRepo domain.DrugRepository,
	notificationRepo domain.NotificationRepository,
	lowStockThreshold int, log logger.Logger) *InventoryService {
	return &InventoryService{
		drugRepo:          drugRepo,
		notificationRepo:  notificationRepo,
		lowStockThreshold: lowStockThreshold,
		log:               log,
	}
}

func (s *InventoryService) CreateDrug(ctx context.Context, name, brand string, quantity int, price float64, expiryDate time.Time) (*domain.Drug, error) {
	drug := &domain.Drug{
		ID:         utils.GenerateID("drug"),
		Name:       name,
		Brand:      brand,
		Quantity:   quantity,
		Price:      price,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.drugRepo.CreateDrug(ctx, drug); err != nil {
		return nil, err
	}

	s.log.Info("Drug created", "drug_id", drug.ID, "name", drug.Name)
	return drug, nil
}

func (s *InventoryService) GetDrug(ctx context.Context, drugID string) (*domain.Drug, error) {
	return s.drugRepo.GetDrug(ctx, drugID)
}

func (s *InventoryService) ListDrugs(ctx context.Context) ([]*domain.Drug, error) {
	return s.drugRepo.ListDrugs(ctx)
}

func (s *InventoryService) UpdateDrug(ctx context.Context, drug *domain.Drug) error {
	return s.drugRepo.UpdateDrug(ctx, drug)
}

func (s *InventoryService) DeleteDrug(ctx context.Context, drugID string) error {
	return s.drugRepo.DeleteDrug(ctx, drugID)
}

func (s *InventoryService) AssignDrugToBranch(ctx context.Context, drugID, branchID string) error {
	if _, err := s.drugRepo.GetDrug(ctx, drugID); err != nil {
		return err
	}
	return s.drugRepo.AssignToBranch(ctx, drugID, branchID)
}

func (s *InventoryService) RemoveDrugFromBranch(ctx context.Context, drugID, branchID string) error {
	return s.drugRepo.RemoveFromBranch(ctx, drugID, branchID)
}

func (s *InventoryService) ListBranchDrugs(ctx context.Context, branchID string) ([]*domain.Drug, error) {
	return s.drugRepo.GetDrugsForBranch(ctx, branchID)
}

// RunInventoryCheck creates one low-stock notification per drug under the
// threshold and returns the created count.
func (s *InventoryService) RunInventoryCheck(ctx context.Context) (int64, error) {
	drugs, err := s.drugRepo.GetLowStockDrugs(ctx, s.lowStockThreshold)
	if err != nil {
		return 0, err
	}

	var created int64
	for _, drug := range drugs {
		notification := &domain.Notification{
			ID:     utils.GenerateID("notif"),
			Type:   domain.NotificationLowStock,
			DrugID: drug.ID,
			Message: fmt.Sprintf("%s is low on stock: %d unit(s) remaining",
				drug.Name, drug.Quantity),
			CreatedAt: time.Now(),
		}

		if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
			return created, err
		}
		created++
	}

	s.log.Info("Inventory check finished", "low_stock", created)
	return created, nil
}
