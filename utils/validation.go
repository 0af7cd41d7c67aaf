// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern   = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	mobilePattern  = regexp.MustCompile(`^\d{10}$`)
	websitePattern = regexp.MustCompile(`^https?://[\w.-]+\.[a-z]{2,}`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}

// ValidateMobile accepts exactly ten digits, the format shops register with.
func ValidateMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// ValidateWebsite requires an http(s) scheme and a dotted host.
func ValidateWebsite(url string) bool {
	return websitePattern.MatchString(url)
}
