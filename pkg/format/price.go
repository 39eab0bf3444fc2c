package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatPrice formats a raw digit string with Indonesian thousands
// separators while the user types: "1234567" -> "1.234.567".
// Non-digit characters are stripped first.
func FormatPrice(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if s == "" {
		return ""
	}

	var out strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		out.WriteString(s[:rem])
		if len(s) > rem {
			out.WriteByte('.')
		}
	}
	for i := rem; i < len(s); i += 3 {
		out.WriteString(s[i : i+3])
		if i+3 < len(s) {
			out.WriteByte('.')
		}
	}
	return out.String()
}

// FormatIDR renders a price in the smallest currency unit as Indonesian
// Rupiah with no decimals, e.g. 1234567 -> "Rp 1.234.567".
func FormatIDR(price int64) string {
	return idPrinter.Sprintf("Rp %d", price)
}

// ParsePrice strips grouping separators from a formatted price input and
// returns the integer value. Empty input parses to zero.
func ParsePrice(value string) (int64, error) {
	cleaned := strings.ReplaceAll(value, ".", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, nil
	}
	return strconv.ParseInt(cleaned, 10, 64)
}
