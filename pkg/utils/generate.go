package utils

import (
	"math/rand"
	"strconv"
)

const (
	confirmationCodeMin = 10000
	confirmationCodeMax = 99999
)

// GenerateConfirmationCode returns a 5-digit numeric code from the
// fixed range 10000-99999.
func GenerateConfirmationCode() string {
	return strconv.Itoa(confirmationCodeMin + rand.Intn(confirmationCodeMax-confirmationCodeMin+1))
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
