package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// MinPrice is the platform-wide floor for any paid item or tier
var MinPrice = decimal.NewFromFloat(0.50)

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

func ValidateUsername(username string) bool {
	return usernameRegexp.MatchString(username)
}

// ValidatePassword requires at least one lowercase, one uppercase and one digit
func ValidatePassword(password string) bool {
	hasLower := strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(password, "0123456789")
	return hasLower && hasUpper && hasDigit
}

// ValidatePrice checks a paid item price against the platform floor
func ValidatePrice(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(MinPrice)
}
