package handler

import (
	"encoding/json"
	"testing"
)

func TestNumericField_Unmarshal(t *testing.T) {
	cases := map[string]string{
		`{"price": 50000}`:    "50000",
		`{"price": 12.5}`:     "12.5",
		`{"price": "7"}`:      "7",
		`{"price": ""}`:       "",
		`{"price": true}`:     "true",
		`{"price": [1]}`:      "[1]",
		`{"price": -3}`:       "-3",
		`{"price": "abc"}`:    "abc",
		`{"price": 1e3}`:      "1e3",
		`{"price":   "  4 "}`: "  4 ",
	}
	for body, want := range cases {
		var req createItemRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if req.Price == nil || req.Price.text() == nil {
			t.Fatalf("%s: price not captured", body)
		}
		if got := *req.Price.text(); got != want {
			t.Errorf("%s: got %q, want %q", body, got, want)
		}
	}
}

func TestNumericField_AbsentOrNull(t *testing.T) {
	for _, body := range []string{`{}`, `{"price": null}`} {
		var req updateItemRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if got := req.Price.text(); got != nil {
			t.Errorf("%s: expected no price, got %q", body, *got)
		}
	}
}
