package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

// MiscHandler covers events and the Bethkati newsletter
type MiscHandler struct {
	db *gorm.DB
}

func NewMiscHandler(db *gorm.DB) *MiscHandler {
	return &MiscHandler{db: db}
}

type createEventRequest struct {
	Name          string  `json:"name" validate:"required,min=3"`
	Date          string  `json:"date" validate:"required"`
	Venue         string  `json:"venue" validate:"required,min=3"`
	Info          *string `json:"info"`
	RecurringRule *string `json:"recurringRule"`
}

// CreateEvent records a parish event or recurring service
func (h *MiscHandler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event date")
	}

	event := models.Event{
		Name:          req.Name,
		Date:          date,
		Venue:         req.Venue,
		Info:          req.Info,
		RecurringRule: req.RecurringRule,
	}
	if err := h.db.Create(&event).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create event")
	}
	return c.JSON(http.StatusOK, event)
}

type eventView struct {
	models.Event
	NextOccurrence time.Time `json:"next_occurrence"`
}

// ListEvents returns all events, newest first, with their next occurrence
func (h *MiscHandler) ListEvents(c echo.Context) error {
	var events []models.Event
	if err := h.db.Order("date desc").Find(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch events")
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{Event: e, NextOccurrence: e.NextOccurrence()})
	}
	return c.JSON(http.StatusOK, views)
}

type createBethkatiRequest struct {
	PDFURL string `json:"pdfUrl" validate:"required,url"`
	Year   int    `json:"year" validate:"required,min=2000"`
	Month  string `json:"month" validate:"required"`
}

// CreateBethkati records a newsletter issue from its hosted PDF URL
func (h *MiscHandler) CreateBethkati(c echo.Context) error {
	var req createBethkatiRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bethkati := models.Bethkati{
		URL:   req.PDFURL,
		Year:  req.Year,
		Month: req.Month,
	}
	if err := h.db.Create(&bethkati).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create bethkati")
	}
	return c.JSON(http.StatusOK, bethkati)
}

// ListBethkati returns all newsletter issues, newest first
func (h *MiscHandler) ListBethkati(c echo.Context) error {
	var issues []models.Bethkati
	if err := h.db.Order("year desc, month desc").Find(&issues).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bethkati")
	}
	return c.JSON(http.StatusOK, issues)
}
