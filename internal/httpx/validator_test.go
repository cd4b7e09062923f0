package httpx

import (
	"strings"
	"testing"
)

type testEnquiry struct {
	Name    string `validate:"required,notblank,min=2,max=100"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,phone"`
	Status  string `validate:"omitempty,oneof=open closed"`
	Rating  int    `validate:"gte=1,lte=5"`
	Message string `validate:"required,max=20"`
}

func TestValidateStruct_ValidInput(t *testing.T) {
	s := testEnquiry{
		Name:    "Rahim",
		Email:   "rahim@example.com",
		Phone:   "+880 1711-000000",
		Status:  "open",
		Rating:  4,
		Message: "Call me",
	}

	errors := ValidateStruct(s)
	if len(errors) != 0 {
		t.Errorf("Expected no validation errors, got %v", errors)
	}
}

func TestValidateStruct_RequiredFields(t *testing.T) {
	errors := ValidateStruct(testEnquiry{Rating: 3})
	if len(errors) == 0 {
		t.Fatal("Expected validation errors for required fields")
	}

	fields := map[string]string{}
	for _, err := range errors {
		fields[err.Field] = err.Message
	}

	for _, f := range []string{"name", "email", "message"} {
		if !strings.Contains(fields[f], "required") {
			t.Errorf("Expected %s required error, got %q", f, fields[f])
		}
	}
}

func TestValidateStruct_BlankName(t *testing.T) {
	s := testEnquiry{Name: "   ", Email: "a@b.co", Rating: 1, Message: "x"}

	errors := ValidateStruct(s)
	if len(errors) != 1 || errors[0].Field != "name" {
		t.Errorf("Expected a single name error, got %v", errors)
	}
}

func TestValidateStruct_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+8801711000000", true},
		{"02 555-0199", true},
		{"12345", false},
		{"call me maybe", false},
		{"+1234567890123456789", false},
	}

	for _, tt := range tests {
		s := testEnquiry{Name: "Ab", Email: "a@b.co", Phone: tt.phone, Rating: 1, Message: "x"}
		errors := ValidateStruct(s)
		if tt.valid && len(errors) != 0 {
			t.Errorf("phone %q: expected valid, got %v", tt.phone, errors)
		}
		if !tt.valid && (len(errors) != 1 || errors[0].Message != "Phone must be a valid phone number") {
			t.Errorf("phone %q: expected phone error, got %v", tt.phone, errors)
		}
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	s := testEnquiry{Name: "A", Email: "nope", Status: "pending", Rating: 9, Message: strings.Repeat("x", 21)}

	got := map[string]string{}
	for _, err := range ValidateStruct(s) {
		got[err.Field] = err.Message
	}

	want := map[string]string{
		"name":    "Name must be at least 2 characters",
		"email":   "Email must be a valid email address",
		"status":  "Status must be one of: open closed",
		"rating":  "Rating must be at most 5",
		"message": "Message must be at most 20 characters",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, got[field])
		}
	}
}

func TestDetails(t *testing.T) {
	d := Details([]ValidationError{{Field: "email", Message: "bad"}})
	if len(d) != 1 || d[0].Field != "email" || d[0].Message != "bad" {
		t.Errorf("unexpected details %v", d)
	}
}
