package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Email validation
// ==========================

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"traveller@example.com", true},
		{"  traveller@example.com  ", true},
		{"first.last+tag@mail.example.co.in", true},
		{"", false},
		{"   ", false},
		{"not-an-email", false},
		{"missing-at.example.com", false},
		{"two@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestEmailSchema_MissingField(t *testing.T) {
	res := EmailSchema.Validate(map[string]interface{}{})
	require.False(t, res.Valid)
	assert.True(t, res.HasErrors("email"))
	assert.Equal(t, "REQUIRED_FIELD_MISSING", res.Errors[0].Code)
}

// ==========================
// Booking record validation
// ==========================

func TestBookingRecordSchema(t *testing.T) {
	valid := map[string]interface{}{
		"booking_id":        "BK1001",
		"passenger_name":    "asha rao",
		"flight_number":     "AI202",
		"pnr":               "",
		"user_email":        "asha@example.com",
		"total_amount_paid": "12,500.00",
		"refund_amount":     0,
	}
	assert.True(t, BookingRecordSchema.Validate(valid).Valid)

	invalid := map[string]interface{}{
		"booking_id":        "",
		"flight_number":     "AI202",
		"total_amount_paid": "twelve",
	}
	res := BookingRecordSchema.Validate(invalid)
	require.False(t, res.Valid)
	assert.True(t, res.HasErrors("booking_id"))
	assert.True(t, res.HasErrors("passenger_name"))
	assert.NotEmpty(t, res.GetErrorsForField("total_amount_paid"))
	assert.Len(t, res.GetErrorMessages(), len(res.Errors))
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 42})
	assert.Error(t, err)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+91 98765 43210"))
	assert.False(t, ValidatePhone("12345"))
}
