package handlers

import (
	"net/http"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CreateSaleRequest struct {
	DrugID        string `json:"drug_id"`
	CustomerID    string `json:"customer_id"`
	Quantity      int    `json:"quantity"`
	ExpiryMinutes int    `json:"expiry_minutes"`
}

type SaleHandler struct {
	sales *services.SaleService
	log   logger.Logger
}

func NewSaleHandler(sales *services.SaleService, log logger.Logger) *SaleHandler {
	return &SaleHandler{
		sales: sales,
		log:   log,
	}
}

func (h *SaleHandler) Register(g *echo.Group) {
	g.POST("/sales", h.CreateSale)
	g.GET("/sales", h.ListSales)
	g.GET("/sales/:id", h.GetSale)
	g.POST("/sales/:id/finalize", h.FinalizeSale)
}

func (h *SaleHandler) CreateSale(c echo.Context) error {
	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.DrugID == "" {
		return jsonError(c, http.StatusBadRequest, "Drug id required")
	}
	if req.Quantity < 1 {
		return jsonError(c, http.StatusBadRequest, "Quantity must be at least 1")
	}

	sale, err := h.sales.CreateSale(c.Request().Context(),
		req.DrugID, req.CustomerID, req.Quantity, req.ExpiryMinutes)
	if err != nil {
		h.log.Error("Failed to create sale", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) ListSales(c echo.Context) error {
	sales, err := h.sales.ListSales(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list sales", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(c echo.Context) error {
	sale, err := h.sales.GetSale(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) FinalizeSale(c echo.Context) error {
	saleID := c.Param("id")
	if err := h.sales.FinalizeSale(c.Request().Context(), saleID); err != nil {
		h.log.Error("Failed to finalize sale", "sale_id", saleID, "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Sale finalized",
	})
}
