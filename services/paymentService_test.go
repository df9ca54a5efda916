package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekomponents/elektrokomp-api/models"
)

func paymentFixture(t *testing.T, handler http.Handler) *PaymentClient {
	t.Helper()
	t.Setenv("PAYMENT_CONSUMER_KEY", "key")
	t.Setenv("PAYMENT_CONSUMER_SECRET", "secret")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &PaymentClient{
		client:  resty.New().SetTimeout(5 * time.Second),
		baseURL: srv.URL,
	}
}

func checkoutOrder() (*models.Order, *models.User, *models.Address) {
	order := &models.Order{
		OrderNumber: "EK2506150042",
		GrandTotal:  31.70,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Metal Film Resistor 1K", Quantity: 3, TotalPrice: 1.50},
		},
	}
	user := &models.User{FirstName: "Ada", LastName: "Yilmaz", Email: "ada@example.com"}
	address := &models.Address{City: "Istanbul", AddressText: "Sanayi Cad. 5", PostalCode: "34000"}
	return order, user, address
}

func TestStartCheckout(t *testing.T) {
	var submitted map[string]any
	submits := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/Transactions/SubmitOrderRequest", func(w http.ResponseWriter, r *http.Request) {
		submits++
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		json.NewEncoder(w).Encode(map[string]string{
			"redirect_url":      "https://pay.example.com/session/xyz",
			"order_tracking_id": "trk-9",
		})
	})

	client := paymentFixture(t, mux)
	order, user, address := checkoutOrder()

	session, err := client.StartCheckout(order, user, address)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/xyz", session.RedirectURL)
	assert.Equal(t, "trk-9", session.BasketID)
	assert.Equal(t, 1, submits)

	// the order number is the gateway conversation id
	assert.Equal(t, "EK2506150042", submitted["id"])
	assert.Equal(t, "TRY", submitted["currency"])
}

func TestStartCheckoutDeclineIsFinal(t *testing.T) {
	submits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/Transactions/SubmitOrderRequest", func(w http.ResponseWriter, r *http.Request) {
		submits++
		http.Error(w, "card declined", http.StatusBadRequest)
	})

	client := paymentFixture(t, mux)
	order, user, address := checkoutOrder()

	_, err := client.StartCheckout(order, user, address)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 1, submits, "declines must not be retried")
}

func TestStartCheckoutTokenFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	client := paymentFixture(t, mux)
	order, user, address := checkoutOrder()

	_, err := client.StartCheckout(order, user, address)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRetrievePaymentResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/Transactions/GetTransactionStatus", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trk-9", r.URL.Query().Get("orderTrackingId"))
		json.NewEncoder(w).Encode(map[string]string{
			"payment_status_description": "COMPLETED",
			"payment_id":                 "pay-77",
		})
	})

	client := paymentFixture(t, mux)

	result, err := client.RetrievePaymentResult("trk-9")
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, "pay-77", result.PaymentID)
	assert.NotEmpty(t, result.Raw)
}

func TestRetrievePaymentResultFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/Transactions/GetTransactionStatus", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"payment_status_description": "FAILED",
			"payment_id":                 "pay-77",
		})
	})

	client := paymentFixture(t, mux)

	result, err := client.RetrievePaymentResult("trk-9")
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
}
