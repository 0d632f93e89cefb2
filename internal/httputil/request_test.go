package httputil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"Krem"}`))
	if err := ParseJSON(httptest.NewRecorder(), req, &dest); err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if dest.Name != "Krem" {
		t.Errorf("Name = %q", dest.Name)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "truncated", body: `{"name":`},
		{name: "not JSON", body: "name=Krem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dest struct{}
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			if err := ParseJSON(httptest.NewRecorder(), req, &dest); err == nil {
				t.Errorf("expected error for %q", tt.body)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		key      string
		def      int
		expected int
	}{
		{name: "present", url: "/api/products?page=3", key: "page", def: 1, expected: 3},
		{name: "absent", url: "/api/products", key: "page", def: 1, expected: 1},
		{name: "unparseable", url: "/api/products?page=abc", key: "page", def: 1, expected: 1},
		{name: "negative", url: "/api/products?page=-2", key: "page", def: 1, expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if got := QueryInt(req, tt.key, tt.def); got != tt.expected {
				t.Errorf("QueryInt = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestPathInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/products/12", nil)
	req.SetPathValue("id", "12")

	got, err := PathInt(req, "id")
	if err != nil {
		t.Fatalf("PathInt: %v", err)
	}
	if got != 12 {
		t.Errorf("PathInt = %d, want 12", got)
	}

	req.SetPathValue("id", "abc")
	if _, err := PathInt(req, "id"); err == nil {
		t.Errorf("expected error for non-numeric id")
	}
}
