package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parish_app_echo/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Ward{},
		&models.Family{},
		&models.Parishoner{},
		&models.Order{},
		&models.Donation{},
		&models.Gallery{},
		&models.GalleryImage{},
		&models.Event{},
		&models.Bethkati{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// fakeGateway accepts exactly one signature and returns a fixed order id
type fakeGateway struct {
	orderID        string
	createErr      error
	validSignature string
	createdAmounts []int64
}

func (f *fakeGateway) CreateOrder(amount int64) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdAmounts = append(f.createdAmounts, amount)
	return f.orderID, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == f.validSignature
}

type fakeMailer struct {
	sendErr error
	sent    []string
}

func (f *fakeMailer) SendReceipt(to, filename string, attachment []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

func thanksgivingInput() CreateOrderInput {
	return CreateOrderInput{
		Type:    models.DonationTypeThanksgiving,
		Amount:  300,
		ForWhom: "Healing",
		ByWhom:  "Jane",
		Email:   "jane@example.com",
	}
}

func TestCreateOrderPersistsPendingRow(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{orderID: "order_abc"}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	orderID, err := svc.CreateOrder(thanksgivingInput())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if orderID != "order_abc" {
		t.Errorf("CreateOrder returned %q; want %q", orderID, "order_abc")
	}

	var order models.Order
	if err := db.Where("razorpay_order_id = ?", "order_abc").First(&order).Error; err != nil {
		t.Fatalf("order row not found: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("order status = %q; want PENDING", order.Status)
	}
	if order.Amount != 300 || order.Type != models.DonationTypeThanksgiving {
		t.Errorf("order fields not copied: amount=%d type=%q", order.Amount, order.Type)
	}
	if order.PaymentID != nil {
		t.Errorf("new order has payment id %q", *order.PaymentID)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{createErr: errors.New("gateway down")}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	if _, err := svc.CreateOrder(thanksgivingInput()); err == nil {
		t.Fatal("CreateOrder succeeded despite gateway failure")
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("found %d order rows after failed gateway call; want 0", count)
	}
}

func TestVerifyPaymentPromotesOrder(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{orderID: "order_abc", validSignature: "good-sig"}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	if _, err := svc.CreateOrder(thanksgivingInput()); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if err := svc.VerifyPayment("order_abc", "pay_123", "good-sig"); err != nil {
		t.Fatalf("VerifyPayment returned error: %v", err)
	}

	var order models.Order
	if err := db.Where("razorpay_order_id = ?", "order_abc").First(&order).Error; err != nil {
		t.Fatalf("order row not found: %v", err)
	}
	if order.Status != models.OrderStatusSuccess {
		t.Errorf("order status = %q; want SUCCESS", order.Status)
	}
	if order.PaymentID == nil || *order.PaymentID != "pay_123" {
		t.Errorf("order payment id = %v; want pay_123", order.PaymentID)
	}

	var donation models.Donation
	if err := db.Where("order_id = ?", order.ID).First(&donation).Error; err != nil {
		t.Fatalf("donation row not found: %v", err)
	}
	if donation.Amount != 300 || donation.Type != models.DonationTypeThanksgiving {
		t.Errorf("donation fields not copied: amount=%d type=%q", donation.Amount, donation.Type)
	}
	if donation.ForWhom != "Healing" || donation.ByWhom != "Jane" || donation.Email != "jane@example.com" {
		t.Errorf("donation donor fields not copied: %+v", donation)
	}
	if donation.PaymentID != "pay_123" {
		t.Errorf("donation payment id = %q; want pay_123", donation.PaymentID)
	}
	if donation.ReceiptIssued {
		t.Error("new donation already marked receipted")
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{orderID: "order_abc", validSignature: "good-sig"}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	if _, err := svc.CreateOrder(thanksgivingInput()); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	err := svc.VerifyPayment("order_abc", "pay_123", "bad-sig")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("VerifyPayment error = %v; want ErrInvalidSignature", err)
	}

	var order models.Order
	if err := db.Where("razorpay_order_id = ?", "order_abc").First(&order).Error; err != nil {
		t.Fatalf("order row not found: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("order status = %q after rejected verification; want PENDING", order.Status)
	}

	var count int64
	db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("found %d donations after rejected verification; want 0", count)
	}
}

func TestVerifyPaymentIsNotReplayable(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{orderID: "order_abc", validSignature: "good-sig"}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	if _, err := svc.CreateOrder(thanksgivingInput()); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if err := svc.VerifyPayment("order_abc", "pay_123", "good-sig"); err != nil {
		t.Fatalf("first VerifyPayment returned error: %v", err)
	}

	err := svc.VerifyPayment("order_abc", "pay_123", "good-sig")
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("second VerifyPayment error = %v; want ErrAlreadyVerified", err)
	}

	var count int64
	db.Model(&models.Donation{}).Count(&count)
	if count != 1 {
		t.Errorf("found %d donations after replay; want 1", count)
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	gateway := &fakeGateway{validSignature: "good-sig"}
	svc := NewDonationService(db, gateway, &fakeMailer{})

	err := svc.VerifyPayment("order_missing", "pay_123", "good-sig")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("VerifyPayment error = %v; want ErrOrderNotFound", err)
	}
}

func TestIssueReceiptMarksDonation(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewDonationService(db, &fakeGateway{}, mailer)

	donation := models.Donation{
		OrderID:   1,
		PaymentID: "pay_123",
		Type:      models.DonationTypeChurch,
		Amount:    500,
		Email:     "jane@example.com",
	}
	if err := db.Create(&donation).Error; err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}

	err := svc.IssueReceipt(donation.ID, "jane@example.com", "receipt.pdf", []byte("pdf-bytes"))
	if err != nil {
		t.Fatalf("IssueReceipt returned error: %v", err)
	}

	if len(mailer.sent) != 1 || mailer.sent[0] != "jane@example.com" {
		t.Errorf("mailer calls = %v; want one call to jane@example.com", mailer.sent)
	}

	var updated models.Donation
	db.First(&updated, donation.ID)
	if !updated.ReceiptIssued {
		t.Error("donation not marked receipted after successful mail")
	}
}

func TestIssueReceiptMailFailureKeepsFlag(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{sendErr: errors.New("relay refused")}
	svc := NewDonationService(db, &fakeGateway{}, mailer)

	donation := models.Donation{OrderID: 1, PaymentID: "pay_123", Email: "jane@example.com"}
	if err := db.Create(&donation).Error; err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}

	err := svc.IssueReceipt(donation.ID, "jane@example.com", "receipt.pdf", []byte("pdf-bytes"))
	if err == nil {
		t.Fatal("IssueReceipt succeeded despite mail failure")
	}

	var updated models.Donation
	db.First(&updated, donation.ID)
	if updated.ReceiptIssued {
		t.Error("donation marked receipted although the mail relay failed")
	}
}

func TestIssueReceiptUnknownDonation(t *testing.T) {
	db := newTestDB(t)
	svc := NewDonationService(db, &fakeGateway{}, &fakeMailer{})

	err := svc.IssueReceipt(999, "jane@example.com", "receipt.pdf", nil)
	if !errors.Is(err, ErrDonationNotFound) {
		t.Fatalf("IssueReceipt error = %v; want ErrDonationNotFound", err)
	}
}

func TestDonationListsPartitionByReceipt(t *testing.T) {
	db := newTestDB(t)
	svc := NewDonationService(db, &fakeGateway{}, &fakeMailer{})

	pending := models.Donation{OrderID: 1, PaymentID: "pay_1", Email: "a@example.com"}
	receipted := models.Donation{OrderID: 2, PaymentID: "pay_2", Email: "b@example.com", ReceiptIssued: true}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}
	if err := db.Create(&receipted).Error; err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}

	inbox, err := svc.ListInbox()
	if err != nil {
		t.Fatalf("ListInbox returned error: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != pending.ID {
		t.Errorf("inbox = %v; want only the unreceipted donation", inbox)
	}

	history, err := svc.ListHistory()
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(history) != 1 || history[0].ID != receipted.ID {
		t.Errorf("history = %v; want only the receipted donation", history)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll returned %d donations; want 2", len(all))
	}
}
