package services

import (
	"context"
	"fmt"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"
)

// Reservation window for unfinalized sales.
const defaultSaleExpiryMinutes = 15

// SaleService creates sales as stock reservations: quantity is taken from
// the drug up front and either kept (finalized) or restored by the
// expired-sale cleanup job.
type SaleService struct {
	saleRepo domain.SaleRepository
	drugRepo domain.DrugRepository
	log      logger.Logger
}

func NewSaleService(saleRepo domain.SaleRepository, drugRepo domain.DrugRepository,
	log logger.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		drugRepo: drugRepo,
		log:      log,
	}
}

func (s *SaleService) CreateSale(ctx context.Context, drugID, customerID string, quantity, expiryMinutes int) (*domain.Sale, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidParameter)
	}
	if expiryMinutes < 1 {
		expiryMinutes = defaultSaleExpiryMinutes
	}

	drug, err := s.drugRepo.GetDrug(ctx, drugID)
	if err != nil {
		return nil, err
	}
	if drug.Quantity < quantity {
		return nil, fmt.Errorf("%w: %s has %d unit(s)", domain.ErrInsufficientStock, drug.Name, drug.Quantity)
	}

	// Reserve stock before the sale record exists; the cleanup job undoes
	// the reservation if the sale is never finalized.
	if err := s.drugRepo.AdjustQuantity(ctx, drugID, -quantity); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:            utils.GenerateID("sale"),
		DrugID:        drugID,
		CustomerID:    customerID,
		Quantity:      quantity,
		TotalPrice:    drug.Price * float64(quantity),
		Finalized:     false,
		ExpiryMinutes: expiryMinutes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.saleRepo.CreateSale(ctx, sale); err != nil {
		// Sale record never materialized; hand the reservation back.
		if restoreErr := s.drugRepo.AdjustQuantity(ctx, drugID, quantity); restoreErr != nil {
			s.log.Error("Failed to restore reservation after create failure",
				"drug_id", drugID, "error", restoreErr)
		}
		return nil, err
	}

	s.log.Info("Sale created", "sale_id", sale.ID, "drug_id", drugID, "quantity", quantity)
	return sale, nil
}

func (s *SaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.GetSale(ctx, saleID)
}

func (s *SaleService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	return s.saleRepo.ListSales(ctx)
}

func (s *SaleService) FinalizeSale(ctx context.Context, saleID string) error {
	sale, err := s.saleRepo.GetSale(ctx, saleID)
	if err != nil {
		return err
	}
	if sale.Finalized {
		return domain.ErrSaleFinalized
	}

	if err := s.saleRepo.FinalizeSale(ctx, saleID); err != nil {
		return err
	}

	s.log.Info("Sale finalized", "sale_id", saleID)
	return nil
}
