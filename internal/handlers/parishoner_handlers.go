package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

// ParishonerHandler manages the member directory and self-service linking
type ParishonerHandler struct {
	db *gorm.DB
}

func NewParishonerHandler(db *gorm.DB) *ParishonerHandler {
	return &ParishonerHandler{db: db}
}

// ListParishoners returns all parishoners with ward and family names
func (h *ParishonerHandler) ListParishoners(c echo.Context) error {
	var parishoners []models.Parishoner
	err := h.db.Preload("Ward").Preload("Family").Order("name asc").Find(&parishoners).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch parishoners")
	}
	return c.JSON(http.StatusOK, parishoners)
}

type addParishonerRequest struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required,min=10,max=15"`
	WardID   *uint  `json:"wardId"`
	FamilyID *uint  `json:"familyId"`
}

// AddParishoner registers a new member
func (h *ParishonerHandler) AddParishoner(c echo.Context) error {
	var req addParishonerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	parishoner := models.Parishoner{
		Name:     req.Name,
		Mobile:   req.Mobile,
		WardID:   req.WardID,
		FamilyID: req.FamilyID,
	}
	if err := h.db.Create(&parishoner).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create parishoner")
	}
	return c.JSON(http.StatusOK, parishoner)
}

type updateParishonerRequest struct {
	Name   *string `json:"name"`
	Mobile *string `json:"mobile" validate:"omitempty,min=10,max=15"`
	WardID *uint   `json:"wardId"`
	Head   *bool   `json:"head"`
}

// UpdateParishoner updates directory details and, when the head flag is
// present, assigns or clears family headship
func (h *ParishonerHandler) UpdateParishoner(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid parishoner ID")
	}

	var req updateParishonerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var parishoner models.Parishoner
	if err := h.db.First(&parishoner, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Parishoner not found")
	}

	if req.Head != nil {
		if *req.Head {
			if parishoner.FamilyID == nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Parishoner must belong to a family before being assigned as head")
			}
			err = h.db.Model(&models.Family{}).
				Where("id = ?", *parishoner.FamilyID).
				Update("head_id", parishoner.ID).Error
		} else {
			err = h.db.Model(&models.Family{}).
				Where("head_id = ?", parishoner.ID).
				Update("head_id", nil).Error
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update family head")
		}
	}

	if req.Name != nil {
		parishoner.Name = *req.Name
	}
	if req.Mobile != nil {
		parishoner.Mobile = *req.Mobile
	}
	if req.WardID != nil {
		parishoner.WardID = req.WardID
	}
	if err := h.db.Save(&parishoner).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update parishoner")
	}

	return c.JSON(http.StatusOK, parishoner)
}

type assignFamilyRequest struct {
	FamilyID uint `json:"familyId" validate:"required"`
}

// AssignToFamily moves a parishoner into a family
func (h *ParishonerHandler) AssignToFamily(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid parishoner ID")
	}

	var req assignFamilyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var parishoner models.Parishoner
	if err := h.db.First(&parishoner, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Parishoner not found")
	}

	parishoner.FamilyID = &req.FamilyID
	if err := h.db.Save(&parishoner).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assign family")
	}
	return c.JSON(http.StatusOK, parishoner)
}

type updateMobileRequest struct {
	Mobile string `json:"mobile" validate:"required,min=10,max=15"`
}

// UpdateMobile is the self-service mobile number update
func (h *ParishonerHandler) UpdateMobile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid parishoner ID")
	}

	var req updateMobileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result := h.db.Model(&models.Parishoner{}).Where("id = ?", id).Update("mobile", req.Mobile)
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update mobile")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Parishoner not found")
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type linkParishonerRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

// LinkParishoner verifies the mobile number, links the parishoner to the
// session user and promotes the user to the PARISHONER role
func (h *ParishonerHandler) LinkParishoner(c echo.Context) error {
	var req linkParishonerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var parishoner models.Parishoner
	if err := h.db.Where("mobile = ?", req.Mobile).First(&parishoner).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Mobile number not found. Please enter a valid number.")
	}

	userID := getUintFromContext(c, "userID")
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to continue")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		parishoner.UserID = &user.ID
		parishoner.Name = user.Name
		if err := tx.Save(&parishoner).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("role", models.RoleParishoner).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to link parishoner")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Parishoner linked successfully!",
	})
}

// Me returns the session user's parishoner profile with ward and family.
// An unlinked user gets null rather than an error.
func (h *ParishonerHandler) Me(c echo.Context) error {
	userID := getUintFromContext(c, "userID")

	var parishoner models.Parishoner
	err := h.db.Preload("Ward").
		Preload("Family.Members").
		Preload("Family.Head").
		Where("user_id = ?", userID).
		First(&parishoner).Error
	if err != nil {
		return c.JSON(http.StatusOK, nil)
	}

	return c.JSON(http.StatusOK, parishoner)
}
