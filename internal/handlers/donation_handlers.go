package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parish_app_echo/internal/models"
	"parish_app_echo/internal/services"
)

// DonationHandler exposes the donation flow: public order creation and
// payment verification, admin inbox/history and receipt issuance
type DonationHandler struct {
	donations *services.DonationService
}

func NewDonationHandler(donations *services.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type createOrderRequest struct {
	Type       string  `json:"type" validate:"required,oneof=CHURCH CHAPEL THANKSGIVING"`
	Amount     int64   `json:"amount" validate:"required,min=100"`
	ForWhom    string  `json:"forWhom" validate:"required"`
	ByWhom     string  `json:"byWhom" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Purpose    *string `json:"purpose"`
	MassTiming *string `json:"massTiming"`
}

// CreateOrder registers a gateway order for the donor's submission
func (h *DonationHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	orderID, err := h.donations.CreateOrder(services.CreateOrderInput{
		Type:       models.DonationType(req.Type),
		Amount:     req.Amount,
		ForWhom:    req.ForWhom,
		ByWhom:     req.ByWhom,
		Email:      req.Email,
		Purpose:    req.Purpose,
		MassTiming: req.MassTiming,
	})
	if err != nil {
		c.Logger().Errorf("Order creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"razorpayOrderId": orderID,
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// VerifyPayment checks the checkout signature and promotes the order into a
// donation
func (h *DonationHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.donations.VerifyPayment(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid payment signature")
	case errors.Is(err, services.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrAlreadyVerified):
		return echo.NewHTTPError(http.StatusConflict, "Payment already verified")
	case err != nil:
		c.Logger().Errorf("Payment verification failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify payment")
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListAll returns every donation
func (h *DonationHandler) ListAll(c echo.Context) error {
	donations, err := h.donations.ListAll()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch donations")
	}
	return c.JSON(http.StatusOK, donations)
}

// ListInbox returns donations waiting for a receipt
func (h *DonationHandler) ListInbox(c echo.Context) error {
	donations, err := h.donations.ListInbox()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch inbox")
	}
	return c.JSON(http.StatusOK, donations)
}

// ListHistory returns donations whose receipt was issued
func (h *DonationHandler) ListHistory(c echo.Context) error {
	donations, err := h.donations.ListHistory()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch history")
	}
	return c.JSON(http.StatusOK, donations)
}

type issueReceiptRequest struct {
	Email string `json:"email" validate:"required,email"`
	File  struct {
		Name   string `json:"name" validate:"required"`
		Buffer string `json:"buffer" validate:"required"` // base64
	} `json:"file" validate:"required"`
}

// IssueReceipt mails the uploaded receipt file to the donor and marks the
// donation as receipted
func (h *DonationHandler) IssueReceipt(c echo.Context) error {
	donationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid donation ID")
	}

	var req issueReceiptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	attachment, err := base64.StdEncoding.DecodeString(req.File.Buffer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file encoding")
	}

	err = h.donations.IssueReceipt(uint(donationID), req.Email, req.File.Name, attachment)
	switch {
	case errors.Is(err, services.ErrDonationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Donation not found")
	case err != nil:
		c.Logger().Errorf("Receipt issuance failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue receipt")
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
