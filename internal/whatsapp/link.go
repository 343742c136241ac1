// Package whatsapp builds click-to-chat and click-to-call links for the
// agency's booking number. Nothing here talks to WhatsApp; the links are
// opened by the visitor's browser.
package whatsapp

import (
	"net/url"
	"strings"
)

const chatBase = "https://wa.me/"

// Digits strips everything except 0-9 from phone, so "+91 97401-74089"
// becomes "919740174089", the form wa.me expects.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Link returns a wa.me URL that opens a chat with phone, prefilled with
// message. An empty message yields a bare chat link.
func Link(phone, message string) string {
	u := chatBase + Digits(phone)
	if message == "" {
		return u
	}
	// wa.me shows a literal "+" for form-encoded spaces.
	return u + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// TelLink returns a tel: URI in E.164 form.
func TelLink(phone string) string {
	return "tel:+" + Digits(phone)
}
