package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway is the surface the donation flow needs from the payment
// provider. RazorpayService is the production implementation; tests supply
// fakes.
type PaymentGateway interface {
	// CreateOrder registers an order with the gateway for the given amount
	// in rupees and returns the gateway's order id.
	CreateOrder(amount int64) (string, error)
	// VerifySignature checks the signature returned by the gateway checkout
	// for the given order and payment ids.
	VerifySignature(orderID, paymentID, signature string) bool
}

type RazorpayService struct {
	client *razorpay.Client
	secret string
}

// NewRazorpayService builds a gateway client from RAZORPAY_KEY_ID and
// RAZORPAY_SECRET_KEY
func NewRazorpayService() *RazorpayService {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	secret := os.Getenv("RAZORPAY_SECRET_KEY")

	return &RazorpayService{
		client: razorpay.NewClient(keyID, secret),
		secret: secret,
	}
}

// CreateOrder creates a Razorpay order. Amounts are converted to paise, the
// currency is fixed to INR.
func (s *RazorpayService) CreateOrder(amount int64) (string, error) {
	data := map[string]interface{}{
		"amount":   amount * 100,
		"currency": "INR",
		"receipt":  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
	}

	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay create order error: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}

	return orderID, nil
}

// VerifySignature recomputes the checkout signature and compares it with
// the supplied one. The expected value is
// hex(HMAC_SHA256(secret, orderID + "|" + paymentID)).
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(s.secret, orderID, paymentID, signature)
}

func verifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
