package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	price, err := NewMoneyFromString("49.99")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	total := price.MulInt(3)
	if total.String() != "149.97" {
		t.Fatalf("total want 149.97 got %s", total.String())
	}
	withTax := total.Add(total.MulFloat(0.1))
	if withTax.String() != "164.97" {
		t.Fatalf("with tax want 164.97 got %s", withTax.String())
	}
	if total.Sub(total).String() != "0.00" {
		t.Fatalf("sub to zero want 0.00 got %s", total.Sub(total).String())
	}
	if price.Cents() != 4999 {
		t.Fatalf("cents want 4999 got %d", price.Cents())
	}
}

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	m, err := NewMoneyFromString("10.005")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if m.String() != "10.01" {
		t.Fatalf("rounded value want 10.01 got %s", m.String())
	}
}

func TestMoneyFromStringRejectsGarbage(t *testing.T) {
	if _, err := NewMoneyFromString("12.x"); err == nil {
		t.Fatalf("garbage amount should fail")
	}
}

func TestMoneyValueScanRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(12.3)
	value, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != "12.30" {
		t.Fatalf("driver value want 12.30 got %v", value)
	}

	var scanned Money
	if err := scanned.Scan("12.30"); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if scanned.Cmp(m) != 0 {
		t.Fatalf("scan round trip mismatch: %s vs %s", scanned.String(), m.String())
	}

	if err := scanned.Scan([]byte("7.50")); err != nil {
		t.Fatalf("scan bytes failed: %v", err)
	}
	if scanned.String() != "7.50" {
		t.Fatalf("scan bytes want 7.50 got %s", scanned.String())
	}
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !scanned.IsZero() {
		t.Fatalf("scan nil should reset to zero")
	}
	if err := scanned.Scan(struct{}{}); err == nil {
		t.Fatalf("unsupported scan type should fail")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	type payload struct {
		Price Money `json:"price"`
	}
	data, err := json.Marshal(payload{Price: NewMoneyFromFloat(49.9)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"price":49.90}` {
		t.Fatalf("marshal want {\"price\":49.90} got %s", data)
	}

	var fromNumber payload
	if err := json.Unmarshal([]byte(`{"price":12.5}`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.Price.String() != "12.50" {
		t.Fatalf("number unmarshal want 12.50 got %s", fromNumber.Price.String())
	}

	var fromString payload
	if err := json.Unmarshal([]byte(`{"price":"12.50"}`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.Price.Cmp(fromNumber.Price) != 0 {
		t.Fatalf("string and number forms should match")
	}

	var bad payload
	if err := json.Unmarshal([]byte(`{"price":"12.x"}`), &bad); err == nil {
		t.Fatalf("invalid money JSON should fail")
	}
}
