package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ekomponents/elektrokomp-api/models"
)

// checkoutAttempts bounds retries for transport-level failures when starting
// a checkout. Retries reuse the order number as the gateway conversation id,
// so a replayed request lands on the same basket instead of opening a second
// one. Gateway-reported declines are never retried.
const checkoutAttempts = 3

// CheckoutSession is the gateway's answer to a submitted basket: where to
// redirect the buyer and the gateway-side basket handle.
type CheckoutSession struct {
	RedirectURL string
	BasketID    string
}

type PaymentClient struct {
	client  *resty.Client
	baseURL string
}

func NewPaymentClient() *PaymentClient {
	return &PaymentClient{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: os.Getenv("PAYMENT_BASE_URL"),
	}
}

func (p *PaymentClient) accessToken() (string, error) {
	consumerKey := os.Getenv("PAYMENT_CONSUMER_KEY")
	consumerSecret := os.Getenv("PAYMENT_CONSUMER_SECRET")
	if consumerKey == "" || consumerSecret == "" {
		return "", fmt.Errorf("payment consumer credentials are not set")
	}

	resp, err := p.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"consumer_key":    consumerKey,
			"consumer_secret": consumerSecret,
		}).
		Post(p.baseURL + "/api/Auth/RequestToken")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response")
	}
	return token, nil
}

// StartCheckout submits the order basket and buyer data to the gateway and
// returns the hosted-payment redirect.
func (p *PaymentClient) StartCheckout(order *models.Order, user *models.User, address *models.Address) (*CheckoutSession, error) {
	token, err := p.accessToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	basketItems := make([]map[string]any, 0, len(order.Items))
	for _, item := range order.Items {
		basketItems = append(basketItems, map[string]any{
			"id":       fmt.Sprint(item.ProductID),
			"name":     item.ProductName,
			"quantity": item.Quantity,
			"price":    fmt.Sprintf("%.2f", item.TotalPrice),
		})
	}

	payload := map[string]any{
		"id":           order.OrderNumber,
		"currency":     "TRY",
		"amount":       order.GrandTotal,
		"description":  fmt.Sprintf("Payment for order %s", order.OrderNumber),
		"callback_url": os.Getenv("PAYMENT_CALLBACK_URL"),
		"billing_address": map[string]any{
			"email_address": user.Email,
			"phone_number":  user.Phone,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"city":          address.City,
			"line_1":        address.AddressText,
			"postal_code":   address.PostalCode,
		},
		"basket_items": basketItems,
	}

	var lastErr error
	for attempt := 0; attempt < checkoutAttempts; attempt++ {
		resp, err := p.client.R().
			SetHeaders(map[string]string{
				"Authorization": "Bearer " + token,
				"Accept":        "application/json",
				"Content-Type":  "application/json",
			}).
			SetBody(payload).
			Post(p.baseURL + "/api/Transactions/SubmitOrderRequest")
		if err != nil {
			// transport failure: retry, same conversation id
			lastErr = err
			continue
		}
		if resp.StatusCode() != 200 {
			// gateway answered: a decline is final
			return nil, fmt.Errorf("%w: submit failed with status %d: %s", ErrUpstream, resp.StatusCode(), string(resp.Body()))
		}

		var body map[string]any
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("%w: invalid gateway response: %v", ErrUpstream, err)
		}
		redirectURL, rOK := body["redirect_url"].(string)
		basketID, bOK := body["order_tracking_id"].(string)
		if !rOK || !bOK || redirectURL == "" || basketID == "" {
			return nil, fmt.Errorf("%w: incomplete gateway response", ErrUpstream)
		}
		return &CheckoutSession{RedirectURL: redirectURL, BasketID: basketID}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

// RetrievePaymentResult exchanges a callback token for the final payment
// verdict.
func (p *PaymentClient) RetrievePaymentResult(basketID string) (*PaymentResult, error) {
	token, err := p.accessToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := p.client.R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		Get(p.baseURL + "/api/Transactions/GetTransactionStatus?orderTrackingId=" + basketID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: invalid status response: %v", ErrUpstream, err)
	}

	status, _ := body["payment_status_description"].(string)
	paymentID, _ := body["payment_id"].(string)
	return &PaymentResult{
		Succeeded: status == "COMPLETED" || status == "SUCCEEDED",
		PaymentID: paymentID,
		Raw:       resp.Body(),
	}, nil
}
