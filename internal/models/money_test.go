package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONIsNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: NewMoney(10)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"price":10.00}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var a, b Money
	if err := json.Unmarshal([]byte(`"12.345"`), &a); err != nil {
		t.Fatalf("string form failed: %v", err)
	}
	if err := json.Unmarshal([]byte(`12.345`), &b); err != nil {
		t.Fatalf("number form failed: %v", err)
	}
	if a.String() != "12.35" || !a.Equal(b) {
		t.Fatalf("unexpected values: %s %s", a, b)
	}
	var bad Money
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Fatalf("expected error for invalid money")
	}
}

func TestMoneyRescale(t *testing.T) {
	total := NewMoney(30)
	if got := total.Rescale(3, 5).String(); got != "50.00" {
		t.Fatalf("rescale = %s, want 50.00", got)
	}
	if got := NewMoney(10).Rescale(3, 1).String(); got != "3.33" {
		t.Fatalf("rescale rounding = %s, want 3.33", got)
	}
	if !total.Rescale(0, 2).IsZero() {
		t.Fatalf("rescale from zero should be zero")
	}
	if got := NewMoney(2.5).Times(4).String(); got != "10.00" {
		t.Fatalf("times = %s", got)
	}
}
