package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

//
// ===========================================================
//  LOCATOR GENERATOR
// ===========================================================
//

const (
	locatorCharset   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	LocatorMinLength = 8
	LocatorMaxLength = 16
)

// GenerateLocator builds a reservation locator: a length picked uniformly from
// 8..16, then each character drawn uniformly from [a-zA-Z0-9]. It does not look
// at existing locators; callers that need uniqueness retry on collision.
func GenerateLocator() (string, error) {
	span := big.NewInt(int64(LocatorMaxLength - LocatorMinLength + 1))
	extra, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	n := LocatorMinLength + int(extra.Int64())

	var sb strings.Builder
	sb.Grow(n)
	alphaLen := big.NewInt(int64(len(locatorCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(locatorCharset[num.Int64()])
	}
	return sb.String(), nil
}
