package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parish_app_echo/internal/models"
)

var (
	// ErrInvalidSignature is returned when the gateway signature does not
	// match the recomputed one. No state changes in that case.
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrOrderNotFound is returned when the gateway order id is unknown.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyVerified is returned when the order was promoted before.
	// Re-verifying a settled payment must not create a second donation.
	ErrAlreadyVerified = errors.New("payment already verified")
	// ErrDonationNotFound is returned for unknown donation ids.
	ErrDonationNotFound = errors.New("donation not found")
)

// ReceiptMailer sends a donation receipt to one recipient
type ReceiptMailer interface {
	SendReceipt(to, filename string, attachment []byte) error
}

// DonationService implements the donation flow: order creation against the
// gateway, verified promotion into a donation, and receipt issuance.
type DonationService struct {
	db      *gorm.DB
	gateway PaymentGateway
	mailer  ReceiptMailer
}

func NewDonationService(db *gorm.DB, gateway PaymentGateway, mailer ReceiptMailer) *DonationService {
	return &DonationService{db: db, gateway: gateway, mailer: mailer}
}

// CreateOrderInput carries the donor's submission
type CreateOrderInput struct {
	Type       models.DonationType
	Amount     int64
	ForWhom    string
	ByWhom     string
	Email      string
	Purpose    *string
	MassTiming *string
}

// CreateOrder registers the order with the gateway and persists a local
// PENDING row keyed by the gateway's order id. No retry on gateway failure;
// the donor resubmits the form.
func (s *DonationService) CreateOrder(input CreateOrderInput) (string, error) {
	razorpayOrderID, err := s.gateway.CreateOrder(input.Amount)
	if err != nil {
		return "", fmt.Errorf("failed to create gateway order: %w", err)
	}

	order := models.Order{
		RazorpayOrderID: razorpayOrderID,
		Type:            input.Type,
		Amount:          input.Amount,
		ForWhom:         input.ForWhom,
		ByWhom:          input.ByWhom,
		Email:           input.Email,
		Purpose:         input.Purpose,
		MassTiming:      input.MassTiming,
		Status:          models.OrderStatusPending,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return "", fmt.Errorf("failed to persist order: %w", err)
	}

	return razorpayOrderID, nil
}

// VerifyPayment checks the checkout signature and, on success, promotes the
// order to SUCCESS and creates the donation record. Both writes run in one
// transaction so a crash cannot strand a SUCCESS order without its donation.
// An order that was already promoted is rejected with ErrAlreadyVerified.
func (s *DonationService) VerifyPayment(razorpayOrderID, paymentID, signature string) error {
	if !s.gateway.VerifySignature(razorpayOrderID, paymentID, signature) {
		return ErrInvalidSignature
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("razorpay_order_id = ?", razorpayOrderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status == models.OrderStatusSuccess {
			return ErrAlreadyVerified
		}

		order.Status = models.OrderStatusSuccess
		order.PaymentID = &paymentID
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		donation := models.Donation{
			OrderID:       order.ID,
			PaymentID:     paymentID,
			Type:          order.Type,
			Amount:        order.Amount,
			ForWhom:       order.ForWhom,
			ByWhom:        order.ByWhom,
			Email:         order.Email,
			Purpose:       order.Purpose,
			MassTiming:    order.MassTiming,
			ReceiptIssued: false,
		}
		return tx.Create(&donation).Error
	})
}

// ListAll returns every donation, newest first
func (s *DonationService) ListAll() ([]models.Donation, error) {
	var donations []models.Donation
	err := s.db.Order("created_at desc").Find(&donations).Error
	return donations, err
}

// ListInbox returns donations still waiting for a receipt
func (s *DonationService) ListInbox() ([]models.Donation, error) {
	var donations []models.Donation
	err := s.db.Where("receipt_issued = ?", false).Order("created_at desc").Find(&donations).Error
	return donations, err
}

// ListHistory returns donations whose receipt has been issued
func (s *DonationService) ListHistory() ([]models.Donation, error) {
	var donations []models.Donation
	err := s.db.Where("receipt_issued = ?", true).Order("created_at desc").Find(&donations).Error
	return donations, err
}

// IssueReceipt mails the uploaded receipt to the donor and marks the
// donation as receipted. The flag is only set after the mail relay accepts
// the message; on failure the donation stays in the inbox for retry.
func (s *DonationService) IssueReceipt(donationID uint, email, filename string, attachment []byte) error {
	var donation models.Donation
	if err := s.db.First(&donation, donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return err
	}

	if err := s.mailer.SendReceipt(email, filename, attachment); err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}

	donation.ReceiptIssued = true
	return s.db.Save(&donation).Error
}
