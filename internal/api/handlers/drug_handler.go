package handlers

import (
	"net/http"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CreateDrugRequest struct {
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	ExpiryDate time.Time `json:"expiry_date"`
}

type UpdateDrugRequest struct {
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	ExpiryDate time.Time `json:"expiry_date"`
}

type DrugHandler struct {
	inventory *services.InventoryService
	expiry    *services.ExpiryService
	log       logger.Logger
}

func NewDrugHandler(inventory *services.InventoryService, expiry *services.ExpiryService,
	log logger.Logger) *DrugHandler {
	return &DrugHandler{
		inventory: inventory,
		expiry:    expiry,
		log:       log,
	}
}

func (h *DrugHandler) Register(g *echo.Group) {
	g.POST("/drugs", h.CreateDrug)
	g.GET("/drugs", h.ListDrugs)
	g.GET("/drugs/expiring", h.ListExpiringDrugs)
	g.GET("/drugs/:id", h.GetDrug)
	g.PUT("/drugs/:id", h.UpdateDrug)
	g.DELETE("/drugs/:id", h.DeleteDrug)
}

func (h *DrugHandler) CreateDrug(c echo.Context) error {
	var req CreateDrugRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" {
		return jsonError(c, http.StatusBadRequest, "Drug name required")
	}
	if req.Quantity < 0 {
		return jsonError(c, http.StatusBadRequest, "Quantity must not be negative")
	}
	if req.Price < 0 {
		return jsonError(c, http.StatusBadRequest, "Price must not be negative")
	}

	drug, err := h.inventory.CreateDrug(c.Request().Context(),
		req.Name, req.Brand, req.Quantity, req.Price, req.ExpiryDate)
	if err != nil {
		h.log.Error("Failed to create drug", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusCreated, drug)
}

func (h *DrugHandler) ListDrugs(c echo.Context) error {
	drugs, err := h.inventory.ListDrugs(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list drugs", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, drugs)
}

func (h *DrugHandler) ListExpiringDrugs(c echo.Context) error {
	expiring, err := h.expiry.GetExpiringDrugs(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list expiring drugs", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, expiring)
}

func (h *DrugHandler) GetDrug(c echo.Context) error {
	drug, err := h.inventory.GetDrug(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, drug)
}

func (h *DrugHandler) UpdateDrug(c echo.Context) error {
	var req UpdateDrugRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	drug, err := h.inventory.GetDrug(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}

	drug.Name = req.Name
	drug.Brand = req.Brand
	drug.Quantity = req.Quantity
	drug.Price = req.Price
	drug.ExpiryDate = req.ExpiryDate

	if err := h.inventory.UpdateDrug(c.Request().Context(), drug); err != nil {
		h.log.Error("Failed to update drug", "drug_id", drug.ID, "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, drug)
}

func (h *DrugHandler) DeleteDrug(c echo.Context) error {
	if err := h.inventory.DeleteDrug(c.Request().Context(), c.Param("id")); err != nil {
		return crudError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
