package stripe

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linkmart/internal/config"
)

func newWebhookTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(&config.StripeConfig{
		SecretKey:     "sk_test_abc",
		WebhookSecret: "whsec_test_abc",
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("nil config want ErrConfigInvalid got %v", err)
	}
	if _, err := NewClient(&config.StripeConfig{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing secret key want ErrConfigInvalid got %v", err)
	}
	if _, err := NewClient(&config.StripeConfig{SecretKey: "sk_test", APIBaseURL: "::bad"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("bad base url want ErrConfigInvalid got %v", err)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	var gotAuth, gotAmount, gotCurrency, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotEmail = r.PostForm.Get("receipt_email")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_test_1",
			"client_secret": "pi_test_1_secret",
			"status":        "requires_payment_method",
			"currency":      "usd",
			"amount":        1288,
		})
	}))
	defer server.Close()

	client, err := NewClient(&config.StripeConfig{
		SecretKey:  "sk_test_abc",
		APIBaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	result, err := client.CreatePaymentIntent(nil, IntentInput{
		Amount:   "12.88",
		Currency: "usd",
		Email:    "buyer@example.com",
		Metadata: map[string]string{"order_no": "LM20260314150926123456"},
	})
	if err != nil {
		t.Fatalf("create payment intent failed: %v", err)
	}
	if gotAuth != "Bearer sk_test_abc" {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
	if gotAmount != "1288" || gotCurrency != "usd" {
		t.Fatalf("amount/currency want 1288/usd got %s/%s", gotAmount, gotCurrency)
	}
	if gotEmail != "buyer@example.com" {
		t.Fatalf("receipt email want buyer@example.com got %s", gotEmail)
	}
	if result.IntentID != "pi_test_1" || result.ClientSecret != "pi_test_1_secret" {
		t.Fatalf("unexpected intent result: %+v", result)
	}
	if result.Amount != "12.88" || result.Currency != "USD" {
		t.Fatalf("amount round trip want 12.88 USD got %s %s", result.Amount, result.Currency)
	}
}

func TestCreatePaymentIntentZeroDecimalCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "1288" {
			t.Fatalf("JPY amount want 1288 got %s", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pi_test_jpy",
			"status":   "requires_payment_method",
			"currency": "jpy",
			"amount":   1288,
		})
	}))
	defer server.Close()

	client, err := NewClient(&config.StripeConfig{SecretKey: "sk_test_abc", APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	result, err := client.CreatePaymentIntent(nil, IntentInput{Amount: "1288", Currency: "JPY"})
	if err != nil {
		t.Fatalf("create payment intent failed: %v", err)
	}
	if result.Amount != "1288" {
		t.Fatalf("JPY amount want 1288 got %s", result.Amount)
	}
}

func TestCreatePaymentIntentRejectsBadAmount(t *testing.T) {
	client := newWebhookTestClient(t)
	if _, err := client.CreatePaymentIntent(nil, IntentInput{Amount: "zero", Currency: "USD"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("invalid amount want ErrConfigInvalid got %v", err)
	}
	if _, err := client.CreatePaymentIntent(nil, IntentInput{Amount: "-5", Currency: "USD"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("negative amount want ErrConfigInvalid got %v", err)
	}
}

func webhookEventBody(t *testing.T, eventType, status string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":   "evt_test_1",
		"type": eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":              "pi_test_1",
				"object":          "payment_intent",
				"status":          status,
				"currency":        "usd",
				"amount_received": 1288,
				"created":         int64(1760000000),
				"metadata": map[string]interface{}{
					"purpose":  "order",
					"order_no": "LM20260314150926123456",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal event failed: %v", err)
	}
	return body
}

func TestVerifyAndParseWebhookSucceeded(t *testing.T) {
	client := newWebhookTestClient(t)
	now := time.Unix(1760000000, 0)
	body := webhookEventBody(t, "payment_intent.succeeded", "succeeded")
	header := BuildSignatureHeader("whsec_test_abc", now.Unix(), body)

	result, err := client.VerifyAndParseWebhook(header, body, now)
	if err != nil {
		t.Fatalf("verify webhook failed: %v", err)
	}
	if result.EventType != "payment_intent.succeeded" || result.Status != "succeeded" {
		t.Fatalf("unexpected event result: %+v", result)
	}
	if result.IntentID != "pi_test_1" {
		t.Fatalf("intent id want pi_test_1 got %s", result.IntentID)
	}
	if result.Amount != "12.88" {
		t.Fatalf("amount want 12.88 got %s", result.Amount)
	}
	if result.Metadata["order_no"] != "LM20260314150926123456" {
		t.Fatalf("metadata missing order_no: %+v", result.Metadata)
	}
	if result.PaidAt == nil || result.PaidAt.Unix() != 1760000000 {
		t.Fatalf("paid at want 1760000000 got %+v", result.PaidAt)
	}
}

func TestVerifyAndParseWebhookInvalidSignature(t *testing.T) {
	client := newWebhookTestClient(t)
	now := time.Unix(1760000000, 0)
	body := webhookEventBody(t, "payment_intent.succeeded", "succeeded")

	header := BuildSignatureHeader("whsec_other_secret", now.Unix(), body)
	if _, err := client.VerifyAndParseWebhook(header, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("foreign secret want ErrSignatureInvalid got %v", err)
	}
	if _, err := client.VerifyAndParseWebhook("", body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("missing header want ErrSignatureInvalid got %v", err)
	}
	if _, err := client.VerifyAndParseWebhook("t=abc,v1=def", body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("garbage header want ErrSignatureInvalid got %v", err)
	}
}

func TestVerifyAndParseWebhookStaleTimestamp(t *testing.T) {
	client := newWebhookTestClient(t)
	signedAt := time.Unix(1760000000, 0)
	body := webhookEventBody(t, "payment_intent.succeeded", "succeeded")
	header := BuildSignatureHeader("whsec_test_abc", signedAt.Unix(), body)

	if _, err := client.VerifyAndParseWebhook(header, body, signedAt.Add(time.Hour)); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("stale timestamp want ErrSignatureInvalid got %v", err)
	}
}

func TestVerifyAndParseWebhookFailedEvent(t *testing.T) {
	client := newWebhookTestClient(t)
	now := time.Unix(1760000000, 0)
	body := webhookEventBody(t, "payment_intent.payment_failed", "requires_payment_method")
	header := BuildSignatureHeader("whsec_test_abc", now.Unix(), body)

	result, err := client.VerifyAndParseWebhook(header, body, now)
	if err != nil {
		t.Fatalf("verify webhook failed: %v", err)
	}
	if result.Status != "failed" {
		t.Fatalf("status want failed got %s", result.Status)
	}
}

func TestMapIntentStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":               "succeeded",
		"SUCCEEDED":               "succeeded",
		"canceled":                "canceled",
		"requires_payment_method": "failed",
		"processing":              "pending",
		"":                        "pending",
	}
	for input, want := range cases {
		if got := MapIntentStatus(input); got != want {
			t.Fatalf("map %q want %s got %s", input, want, got)
		}
	}
}
