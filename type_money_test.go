package finbook

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("12.50", "USD")
	if err != nil {
		t.Fatalf("ParseMoney failed: %v", err)
	}
	if !m.Equal(M(12.5, "USD")) {
		t.Errorf("ParseMoney(12.50) = %s, want 12.5", m)
	}
	if m.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD", m.Currency())
	}

	if _, err := ParseMoney("twelve", "USD"); err == nil {
		t.Error("ParseMoney(twelve) succeeded, want error")
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a, b := M(10.5, "USD"), M(2.25, "USD")
	if got := a.Add(b); !got.Equal(M(12.75, "")) {
		t.Errorf("Add = %s, want 12.75", got)
	}
	if got := a.Sub(b); !got.Equal(M(8.25, "")) {
		t.Errorf("Sub = %s, want 8.25", got)
	}
	if got := a.Neg(); !got.Equal(M(-10.5, "")) {
		t.Errorf("Neg = %s, want -10.5", got)
	}
	if !a.GreaterThan(b) || b.GreaterThan(a) || !b.LessThan(a) {
		t.Error("comparisons are inconsistent")
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// The "" currency adopts the other operand's currency, so amounts
	// decoded from a snapshot mix freely with typed ones.
	weak, usd := M(10, ""), M(5, "USD")
	if got := weak.Add(usd); got.Currency() != "USD" {
		t.Errorf("weak + USD currency = %q, want USD", got.Currency())
	}
	if got := usd.Sub(weak); got.Currency() != "USD" {
		t.Errorf("USD - weak currency = %q, want USD", got.Currency())
	}
	if got := weak.Add(M(1, "")); got.Currency() != "" {
		t.Errorf("weak + weak currency = %q, want weak", got.Currency())
	}
}

func TestMoney_DivDays(t *testing.T) {
	if got := M(300, "USD").DivDays(31); !got.Equal(M(10, "")) {
		t.Errorf("300/31 = %s, want 10", got)
	}
	if got := M(22, "USD").DivDays(31); !got.Equal(M(1, "")) {
		t.Errorf("22/31 = %s, want 1", got)
	}
	if got := M(100, "USD").DivDays(0); !got.IsZero() {
		t.Errorf("100/0 = %s, want 0", got)
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(M(70.25, "USD"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// Snapshots persist plain numbers, no quotes, no currency.
	if string(data) != "70.25" {
		t.Errorf("Marshal = %s, want 70.25", data)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(M(70.25, "")) {
		t.Errorf("round trip = %s, want 70.25", back)
	}
	if back.Currency() != "" {
		t.Errorf("decoded currency = %q, want weak", back.Currency())
	}
}
