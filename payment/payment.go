package payment

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"lms/config"
)

// Client talks to the sandbox payment gateway. In sandbox mode every
// checkout settles immediately with a locally generated transaction id;
// against a live gateway the session and verification round-trip the API.
type Client struct {
	http    *resty.Client
	apiKey  string
	secret  string
	sandbox bool
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.PaymentApiURL).
			SetTimeout(10 * time.Second),
		apiKey:  cfg.PaymentApiKey,
		secret:  cfg.PaymentSecretKey,
		sandbox: cfg.PaymentSandbox,
	}
}

// CheckoutSession is what the caller is redirected through for a paid
// enrollment.
type CheckoutSession struct {
	TransactionID string `json:"transaction_id"`
	Amount        uint   `json:"amount"`
	Status        string `json:"status"`
}

// CreateCheckout opens a payment session for the given amount.
func (c *Client) CreateCheckout(userID, courseID, amount uint) (*CheckoutSession, error) {
	if c.sandbox {
		return &CheckoutSession{
			TransactionID: "txn_" + uuid.NewString(),
			Amount:        amount,
			Status:        "CREATED",
		}, nil
	}

	var session CheckoutSession
	resp, err := c.http.R().
		SetHeader("x-api-key", c.apiKey).
		SetHeader("x-api-secret", c.secret).
		SetBody(map[string]interface{}{
			"amount":    amount,
			"reference": fmt.Sprintf("course-%d-user-%d", courseID, userID),
		}).
		SetResult(&session).
		Post("/checkout")
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create checkout: gateway status %d", resp.StatusCode())
	}
	return &session, nil
}

// VerifyPayment confirms a transaction settled before the enrollment is
// recorded.
func (c *Client) VerifyPayment(transactionID string) (bool, error) {
	if c.sandbox {
		log.Printf("[PAYMENT] Sandbox mode, accepting transaction %s", transactionID)
		return true, nil
	}

	var result struct {
		Status string `json:"status"`
	}
	resp, err := c.http.R().
		SetHeader("x-api-key", c.apiKey).
		SetHeader("x-api-secret", c.secret).
		SetResult(&result).
		Get("/transactions/" + transactionID)
	if err != nil {
		return false, fmt.Errorf("verify payment: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("verify payment: gateway status %d", resp.StatusCode())
	}
	return result.Status == "SUCCESS", nil
}
