package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	if d.String() != "2024-01-01" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-01-01")
	}

	if _, err := ParseDate("01/01/2024"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}

func TestDateUnmarshalTimestamp(t *testing.T) {
	// Backend sends full timestamps; the time-of-day must be discarded.
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-15T17:45:30.123Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.String() != "2024-03-15" {
		t.Errorf("String() = %q, want %q", d.String(), "2024-03-15")
	}
}

func TestDateUnmarshalDateOnly(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-15"`), &d); err != nil {
		t.Fatalf("unmarshal date: %v", err)
	}
	if !d.Equal(NewDate(2024, time.March, 15)) {
		t.Errorf("got %v, want 2024-03-15", d)
	}
}

func TestDateMarshalDateOnly(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	if string(data) != `"2024-03-15"` {
		t.Errorf("marshal = %s, want %q", data, `"2024-03-15"`)
	}
}

func TestDateZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if d.String() != "" {
		t.Errorf("zero Date String() = %q, want empty", d.String())
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal zero date: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("marshal zero = %s, want empty string", data)
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Error("null should decode to zero Date")
	}
}
