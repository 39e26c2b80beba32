package handlers

import (
	"net/http"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CreatePharmacyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CreateBranchRequest struct {
	PharmacyID string `json:"pharmacy_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type AssignDrugRequest struct {
	DrugID string `json:"drug_id"`
}

type PharmacyHandler struct {
	repo      domain.PharmacyRepository
	inventory *services.InventoryService
	log       logger.Logger
}

func NewPharmacyHandler(repo domain.PharmacyRepository,
	inventory *services.InventoryService, log logger.Logger) *PharmacyHandler {
	return &PharmacyHandler{
		repo:      repo,
		inventory: inventory,
		log:       log,
	}
}

func (h *PharmacyHandler) Register(g *echo.Group) {
	g.POST("/pharmacies", h.CreatePharmacy)
	g.GET("/pharmacies", h.ListPharmacies)
	g.GET("/pharmacies/:id", h.GetPharmacy)
	g.GET("/pharmacies/:id/branches", h.ListBranches)

	g.POST("/branches", h.CreateBranch)
	g.GET("/branches/:id", h.GetBranch)
	g.GET("/branches/:id/drugs", h.ListBranchDrugs)
	g.POST("/branches/:id/drugs", h.AssignDrug)
	g.DELETE("/branches/:id/drugs/:drugId", h.RemoveDrug)

	g.POST("/customers", h.CreateCustomer)
	g.GET("/customers", h.ListCustomers)
	g.GET("/customers/:id", h.GetCustomer)
}

func (h *PharmacyHandler) CreatePharmacy(c echo.Context) error {
	var req CreatePharmacyRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return jsonError(c, http.StatusBadRequest, "Pharmacy name required")
	}

	pharmacy := &domain.Pharmacy{
		ID:        utils.GenerateID("pharmacy"),
		Name:      req.Name,
		Address:   req.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.CreatePharmacy(c.Request().Context(), pharmacy); err != nil {
		h.log.Error("Failed to create pharmacy", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusCreated, pharmacy)
}

func (h *PharmacyHandler) ListPharmacies(c echo.Context) error {
	pharmacies, err := h.repo.ListPharmacies(c.Request().Context())
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, pharmacies)
}

func (h *PharmacyHandler) GetPharmacy(c echo.Context) error {
	pharmacy, err := h.repo.GetPharmacy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, pharmacy)
}

func (h *PharmacyHandler) CreateBranch(c echo.Context) error {
	var req CreateBranchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.PharmacyID == "" {
		return jsonError(c, http.StatusBadRequest, "Branch name and pharmacy id required")
	}

	if _, err := h.repo.GetPharmacy(c.Request().Context(), req.PharmacyID); err != nil {
		return crudError(c, err)
	}

	branch := &domain.Branch{
		ID:         utils.GenerateID("branch"),
		PharmacyID: req.PharmacyID,
		Name:       req.Name,
		Address:    req.Address,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.repo.CreateBranch(c.Request().Context(), branch); err != nil {
		h.log.Error("Failed to create branch", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusCreated, branch)
}

func (h *PharmacyHandler) GetBranch(c echo.Context) error {
	branch, err := h.repo.GetBranch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

func (h *PharmacyHandler) ListBranches(c echo.Context) error {
	branches, err := h.repo.ListBranches(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, branches)
}

func (h *PharmacyHandler) ListBranchDrugs(c echo.Context) error {
	drugs, err := h.inventory.ListBranchDrugs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, drugs)
}

func (h *PharmacyHandler) AssignDrug(c echo.Context) error {
	var req AssignDrugRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.DrugID == "" {
		return jsonError(c, http.StatusBadRequest, "Drug id required")
	}

	branchID := c.Param("id")
	if _, err := h.repo.GetBranch(c.Request().Context(), branchID); err != nil {
		return crudError(c, err)
	}

	if err := h.inventory.AssignDrugToBranch(c.Request().Context(), req.DrugID, branchID); err != nil {
		h.log.Error("Failed to assign drug to branch", "branch_id", branchID,
			"drug_id", req.DrugID, "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Drug assigned to branch",
	})
}

func (h *PharmacyHandler) RemoveDrug(c echo.Context) error {
	if err := h.inventory.RemoveDrugFromBranch(c.Request().Context(),
		c.Param("drugId"), c.Param("id")); err != nil {
		return crudError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PharmacyHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return jsonError(c, http.StatusBadRequest, "Customer name required")
	}

	customer := &domain.Customer{
		ID:        utils.GenerateID("customer"),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.CreateCustomer(c.Request().Context(), customer); err != nil {
		h.log.Error("Failed to create customer", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h *PharmacyHandler) ListCustomers(c echo.Context) error {
	customers, err := h.repo.ListCustomers(c.Request().Context())
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *PharmacyHandler) GetCustomer(c echo.Context) error {
	customer, err := h.repo.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return crudError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}
