package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"lms/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	orderID := "order_Nxq7pZk2mW"
	paymentID := "pay_Nxq8aQb3vX"

	valid := signPayload(orderID, paymentID, config.AppConfig.RazorpayKeySecret)
	assert.True(t, VerifyPaymentSignature(orderID, paymentID, valid))

	// Tampered payload or signature must fail
	assert.False(t, VerifyPaymentSignature(orderID, "pay_other", valid))
	assert.False(t, VerifyPaymentSignature("order_other", paymentID, valid))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, valid+"00"))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, ""))

	// Signature made with the wrong secret must fail
	wrongKey := signPayload(orderID, paymentID, "some_other_secret")
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, wrongKey))
}

func TestCreateRazorpayOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, config.AppConfig.RazorpayKeyID, user)
		assert.Equal(t, config.AppConfig.RazorpayKeySecret, pass)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(499900), body["amount"])
		assert.Equal(t, "INR", body["currency"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_Nxq7pZk2mW",
			"amount":   499900,
			"currency": "INR",
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()

	oldURL := config.AppConfig.RazorpayApiURL
	config.AppConfig.RazorpayApiURL = server.URL + "/"
	defer func() { config.AppConfig.RazorpayApiURL = oldURL }()

	order, err := CreateRazorpayOrder(499900, "INR", "receipt_1736500000000", map[string]string{"course_id": "12"})
	require.NoError(t, err)
	assert.Equal(t, "order_Nxq7pZk2mW", order.ID)
	assert.Equal(t, int64(499900), order.Amount)
	assert.Equal(t, "receipt_1736500000000", order.Receipt)
}

func TestCreateRazorpayOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer server.Close()

	oldURL := config.AppConfig.RazorpayApiURL
	config.AppConfig.RazorpayApiURL = server.URL + "/"
	defer func() { config.AppConfig.RazorpayApiURL = oldURL }()

	_, err := CreateRazorpayOrder(100, "INR", "receipt_x", nil)
	assert.Error(t, err)
}
