package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

// WardHandler manages ward records. All ward endpoints are admin-only.
type WardHandler struct {
	db *gorm.DB
}

func NewWardHandler(db *gorm.DB) *WardHandler {
	return &WardHandler{db: db}
}

// ListWards returns all wards, name ascending
func (h *WardHandler) ListWards(c echo.Context) error {
	var wards []models.Ward
	if err := h.db.Order("name asc").Find(&wards).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch wards")
	}
	return c.JSON(http.StatusOK, wards)
}

// GetWard returns one ward with its parishoners
func (h *WardHandler) GetWard(c echo.Context) error {
	wardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ward ID")
	}

	var ward models.Ward
	if err := h.db.Preload("Parishoners").First(&ward, wardID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Ward not found")
	}
	return c.JSON(http.StatusOK, ward)
}

type addWardRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddWard creates a new ward
func (h *WardHandler) AddWard(c echo.Context) error {
	var req addWardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ward := models.Ward{Name: req.Name}
	if err := h.db.Create(&ward).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create ward")
	}
	return c.JSON(http.StatusOK, ward)
}
