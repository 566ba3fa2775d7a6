package phone

import (
	"fmt"
	"strings"
)

// FormatDisplay renders a Turkish mobile number as +90 5XX XXX XX XX.
// Numbers that do not match the expected shapes are returned as is; an empty
// input renders as a dash.
func FormatDisplay(phone string) string {
	if len(phone) == 0 {
		return "-"
	}

	digits := stripNonDigits(phone)

	if strings.HasPrefix(digits, "90") && len(digits) == 12 {
		digits = digits[2:]
	}

	if len(digits) != 10 {
		return phone
	}

	return fmt.Sprintf("+90 %s %s %s %s", digits[0:3], digits[3:6], digits[6:8], digits[8:10])
}

func stripNonDigits(value string) string {
	var builder strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
