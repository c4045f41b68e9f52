package common

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12,50", "12.5"},
		{"12.50", "12.5"},
		{"1.234,56", "1234.56"},
		{"R$ 19,99", "19.99"},
		{"0", "0"},
		{"1.500", "1500"},
		{"1.234.567", "1234567"},
		{"1.5", "1.5"},
		{"0.125", "0.125"},
		{"-2.000", "-2000"},
		{".500", "0.5"},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got.String(), tc.want)
		}
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}

func TestAmountJSON(t *testing.T) {
	var v struct {
		Value Amount `json:"value"`
	}
	if err := json.Unmarshal([]byte(`{"value": 1500.25}`), &v); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if v.Value.String() != "1500.25" {
		t.Fatalf("value = %s", v.Value.String())
	}
	if err := json.Unmarshal([]byte(`{"value": "7.5"}`), &v); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"value":7.5}` {
		t.Fatalf("marshal = %s, want bare number", raw)
	}
}

func TestPageHasMore(t *testing.T) {
	if !(Page[int]{CurrentPage: 1, TotalPages: 2}).HasMore() {
		t.Fatal("page 1 of 2 must have more")
	}
	if (Page[int]{CurrentPage: 2, TotalPages: 2}).HasMore() {
		t.Fatal("last page must not have more")
	}
	if (Page[int]{}).HasMore() {
		t.Fatal("empty page must not have more")
	}
}
