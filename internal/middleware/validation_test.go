package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type createProductPayload struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

func TestDecodeAndValidate_AcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"name":"Story One","description":"A story","price":12.5}`,
	))

	var payload createProductPayload
	if err := DecodeAndValidate(req, &payload); err != nil {
		t.Fatalf("Expected valid payload to pass, got %v", err)
	}
	if payload.Name != "Story One" {
		t.Errorf("Payload not decoded: %+v", payload)
	}
}

func TestDecodeAndValidate_RejectsMissingFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"price":-1,"image_url":"not a url"}`,
	))

	var payload createProductPayload
	err := DecodeAndValidate(req, &payload)
	if err == nil {
		t.Fatal("Expected validation failure")
	}

	validationErrors := FormatValidationErrors(err)
	if len(validationErrors) == 0 {
		t.Fatalf("Expected formatted validation errors, got %v", err)
	}

	fields := map[string]string{}
	for _, ve := range validationErrors {
		fields[ve.Field] = ve.Message
	}
	if fields["Name"] != "This field is required" {
		t.Errorf("Expected required message for Name, got %q", fields["Name"])
	}
	if fields["Price"] == "" {
		t.Error("Expected gte message for Price")
	}
}

func TestDecodeAndValidate_RejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))

	var payload createProductPayload
	if err := DecodeAndValidate(req, &payload); err == nil {
		t.Fatal("Expected decode failure for malformed JSON")
	}
}
