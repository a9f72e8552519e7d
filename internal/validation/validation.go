// Package validation holds the field format checks shared by the listing and
// host profile services.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	languageRegex = regexp.MustCompile(`^[a-z]{2,3}$`)
)

// MaxURLLen bounds stored image URLs.
const MaxURLLen = 500

// ValidateCurrency checks an upper-case ISO 4217 style code such as RON or EUR.
func ValidateCurrency(code string) error {
	if !currencyRegex.MatchString(code) {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	return nil
}

// ValidateLanguageCode checks a lower-case ISO 639 code such as ro or en.
func ValidateLanguageCode(code string) error {
	if !languageRegex.MatchString(code) {
		return fmt.Errorf("invalid language code %q", code)
	}
	return nil
}

// ValidateImageURL accepts an empty string or an absolute http(s) URL.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	if len(raw) > MaxURLLen {
		return fmt.Errorf("url too long (max %d characters)", MaxURLLen)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}
