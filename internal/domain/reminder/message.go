package reminder

import (
	"fmt"
	"strings"
)

const messageTemplate = "Dear %s,\n\nYou have ₹%s pending. Please clear it soon.\n\nThank you!"

// Message renders the reminder text for a customer.
func Message(name, amount string) string {
	return fmt.Sprintf(messageTemplate, name, amount)
}

// Link builds the wa.me chat link with the message pre-filled.
func Link(countryCode, phone, message string) string {
	return "https://wa.me/" + encodeComponent(countryCode+phone) + "?text=" + encodeComponent(message)
}

// encodeComponent percent-encodes every byte outside the URI component
// unreserved set (letters, digits and -_.!~*'()).
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
