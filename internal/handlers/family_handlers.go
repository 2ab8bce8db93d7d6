package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

// FamilyHandler manages family records
type FamilyHandler struct {
	db *gorm.DB
}

func NewFamilyHandler(db *gorm.DB) *FamilyHandler {
	return &FamilyHandler{db: db}
}

// ListFamilies returns all families with their heads, name ascending
func (h *FamilyHandler) ListFamilies(c echo.Context) error {
	var families []models.Family
	if err := h.db.Preload("Head").Order("name asc").Find(&families).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch families")
	}
	return c.JSON(http.StatusOK, families)
}

type addFamilyRequest struct {
	Name   string `json:"name" validate:"required"`
	HeadID *uint  `json:"headId"`
}

// AddFamily creates a family, optionally with a head
func (h *FamilyHandler) AddFamily(c echo.Context) error {
	var req addFamilyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	family := models.Family{
		Name:   req.Name,
		HeadID: req.HeadID,
	}
	if err := h.db.Create(&family).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create family")
	}
	return c.JSON(http.StatusOK, family)
}

// ListMembers returns the parishoners of one family, name ascending
func (h *FamilyHandler) ListMembers(c echo.Context) error {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid family ID")
	}

	var members []models.Parishoner
	err = h.db.Preload("Ward").
		Where("family_id = ?", familyID).
		Order("name asc").
		Find(&members).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch family members")
	}
	return c.JSON(http.StatusOK, members)
}
