package brokerage

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPOracle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			fmt.Fprint(w, `{"quote":{"price":151.25}}`)
		case "SAP":
			// some services quote with a decimal comma, as a string.
			fmt.Fprint(w, `{"quote":{"price":"212,40"}}`)
		case "HALT":
			fmt.Fprint(w, `{"quote":{"price":0}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	oracle := &HTTPOracle{
		URLFormat: server.URL + "/?symbol=%s",
		Path:      "$.quote.price",
		Currency:  "USD",
		Client:    server.Client(),
	}

	t.Run("float price", func(t *testing.T) {
		got, err := oracle.Price("aapl")
		if err != nil {
			t.Fatalf("Price failed: %v", err)
		}
		if want := M(151.25, "USD"); !got.Equal(want) {
			t.Errorf("Price = %s, want %s", got, want)
		}
	})

	t.Run("string price with decimal comma", func(t *testing.T) {
		got, err := oracle.Price("SAP")
		if err != nil {
			t.Fatalf("Price failed: %v", err)
		}
		if want := M(212.40, "USD"); !got.Equal(want) {
			t.Errorf("Price = %s, want %s", got, want)
		}
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		if _, err := oracle.Price("HALT"); err == nil {
			t.Error("a zero quote should fail")
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		if _, err := oracle.Price("MISSING"); err == nil {
			t.Error("a 404 from the service should fail")
		}
	})
}

func TestHTTPOracleDrivesBuys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price":50}`)
	}))
	defer server.Close()

	oracle := &HTTPOracle{
		URLFormat: server.URL + "/?symbol=%s",
		Path:      "$.price",
		Currency:  "USD",
		Client:    server.Client(),
	}

	a, err := NewAccount("alice", "USD", M(1000, "USD"), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	tx, err := a.Buy(oracle, "XYZ", 4, time.Time{}, "")
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if !tx.Total.Equal(M(200, "USD")) {
		t.Errorf("total = %s, want 200", tx.Total)
	}
	if !a.CashBalance().Equal(M(800, "USD")) {
		t.Errorf("cash = %s, want 800", a.CashBalance())
	}
}
