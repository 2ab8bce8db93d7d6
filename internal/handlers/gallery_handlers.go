package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parish_app_echo/internal/services"
)

// GalleryHandler exposes gallery uploads, folder/image listing and likes
type GalleryHandler struct {
	gallery *services.GalleryService
}

func NewGalleryHandler(gallery *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

type uploadGalleryRequest struct {
	EventName string   `json:"eventName" validate:"required"`
	EventDate string   `json:"eventDate" validate:"required"`
	Images    []string `json:"images" validate:"required,min=1"`
}

// UploadGallery uploads an event's images and records the new gallery
func (h *GalleryHandler) UploadGallery(c echo.Context) error {
	var req uploadGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	gallery, err := h.gallery.UploadGallery(c.Request().Context(), req.EventName, req.EventDate, req.Images, getUintFromContext(c, "userID"))
	if err != nil {
		c.Logger().Errorf("Gallery upload failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload gallery")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":          true,
		"cloudinaryFolder": gallery.CloudinaryFolder,
	})
}

// ListFolders returns all galleries with their preview images
func (h *GalleryHandler) ListFolders(c echo.Context) error {
	folders, err := h.gallery.ListFolders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch galleries")
	}
	return c.JSON(http.StatusOK, folders)
}

// ListImages returns one gallery's images with like state for the viewer
func (h *GalleryHandler) ListImages(c echo.Context) error {
	galleryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid gallery ID")
	}

	images, err := h.gallery.ImagesByGallery(uint(galleryID), currentUserID(c))
	switch {
	case errors.Is(err, services.ErrGalleryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Gallery not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch images")
	}

	return c.JSON(http.StatusOK, images)
}

// ToggleLike flips the caller's like on an image
func (h *GalleryHandler) ToggleLike(c echo.Context) error {
	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid image ID")
	}

	likes, isLiked, err := h.gallery.ToggleLike(uint(imageID), getUintFromContext(c, "userID"))
	switch {
	case errors.Is(err, services.ErrImageNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"likes":   likes,
		"isLiked": isLiked,
	})
}
