package validation

import "strings"

// EmailSchema accepts an object carrying a well-formed email address.
var EmailSchema = MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"email"},
	"properties": map[string]interface{}{
		"email": map[string]interface{}{
			"type":      "string",
			"format":    "email",
			"minLength": 3,
			"maxLength": 254,
		},
	},
})

// BookingRecordSchema describes the columns a booking row needs before the
// assistant will answer questions about it. Amounts may arrive as numbers or
// numeric strings.
var BookingRecordSchema = MustCompile(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"booking_id", "passenger_name", "flight_number"},
	"properties": map[string]interface{}{
		"booking_id":     nonEmptyString(),
		"passenger_name": nonEmptyString(),
		"flight_number":  nonEmptyString(),
		"pnr":            map[string]interface{}{"type": "string"},
		"user_email": map[string]interface{}{
			"anyOf": []interface{}{
				map[string]interface{}{"type": "string", "maxLength": 0},
				map[string]interface{}{"type": "string", "format": "email"},
			},
		},
		"total_amount_paid": amount(),
		"refund_amount":     amount(),
		"ticket_price":      amount(),
		"taxes":             amount(),
	},
})

func nonEmptyString() map[string]interface{} {
	return map[string]interface{}{"type": "string", "minLength": 1}
}

func amount() map[string]interface{} {
	return map[string]interface{}{
		"anyOf": []interface{}{
			map[string]interface{}{"type": "number", "minimum": 0},
			map[string]interface{}{"type": "string", "pattern": `^\s*[0-9][0-9,]*(\.[0-9]+)?\s*$|^\s*$`},
		},
	}
}

// ValidateEmail reports whether email is a syntactically valid address.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return EmailSchema.Validate(map[string]interface{}{"email": email}).Valid
}
