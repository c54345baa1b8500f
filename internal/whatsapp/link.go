// Package whatsapp builds the outbound contact deep links shown on listing
// pages. Pure formatting, no I/O.
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

var (
	nonDigits  = regexp.MustCompile(`\D`)
	ivoirPhone = regexp.MustCompile(`^(\+?225)?[0-9]{10}$`)
)

// Link returns a wa.me URL for the seller's number with a pre-filled French
// message naming the listing and its price.
func Link(phone, title string, price int64) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	message := fmt.Sprintf("Bonjour, je suis intéressé(e) par votre *%s* à *%s* sur Brumerie.", title, FormatPrice(price))
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// FormatPrice renders a major-unit amount as FCFA with French thousands
// grouping (non-breaking spaces).
func FormatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var grouped []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, "\u00a0"...)
		}
		grouped = append(grouped, c)
	}
	if neg {
		return "-" + string(grouped) + "\u00a0FCFA"
	}
	return string(grouped) + "\u00a0FCFA"
}

// ValidatePhone accepts Ivorian numbers: ten digits, optionally prefixed
// with the 225 country code.
func ValidatePhone(phone string) bool {
	return ivoirPhone.MatchString(nonDigits.ReplaceAllString(phone, ""))
}

// FormatPhoneDisplay renders a number with the +225 prefix and pair spacing
// when the country code is present, and leaves anything else untouched.
func FormatPhoneDisplay(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) == 13 && digits[:3] == "225" {
		return fmt.Sprintf("+225 %s %s %s %s", digits[3:5], digits[5:7], digits[7:9], digits[9:])
	}
	return phone
}
