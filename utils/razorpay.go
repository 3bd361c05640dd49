package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"lms/config"

	"github.com/go-resty/resty/v2"
)

// RazorpayOrderResponse represents the response from the Razorpay orders API
type RazorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateRazorpayOrder opens an order with the payment gateway. Amount must
// be in the smallest currency unit (paise for INR).
func CreateRazorpayOrder(amount int64, currency, receipt string, notes map[string]string) (*RazorpayOrderResponse, error) {
	client := resty.New()

	var order RazorpayOrderResponse
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
			"notes":    notes,
		}).
		SetResult(&order).
		Post(config.AppConfig.RazorpayApiURL + "orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway error: %s", resp.String())
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned no order id")
	}

	return &order, nil
}

// VerifyPaymentSignature checks the gateway callback signature: HMAC-SHA256
// of "orderId|paymentId" keyed with the API secret, hex encoded.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpayKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
