package cryptotax

import (
	"testing"
	"time"

	"github.com/etnz/cryptotax/date"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1)
		w.Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"z":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still added by Append.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestTransaction_MarshalJSON(t *testing.T) {
	tx := NewTransaction("1", date.New(2024, time.January, 15), Buy, "BTC", 0.5, 20000, 20000, "Coinbase", "USD")
	got, err := tx.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"id":"1","date":"2024-01-15","type":"buy","asset":"BTC","amount":0.5,"cost_basis":20000,"fair_market_value":20000,"currency":"USD","exchange":"Coinbase"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	var back Transaction
	if err := back.UnmarshalJSON(got); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if !back.Equal(tx) {
		t.Errorf("UnmarshalJSON() = %+v, want %+v", back, tx)
	}
}
