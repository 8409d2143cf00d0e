package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// cardNumberBIN is the issuer prefix every generated card number starts
// with. Combined with 13 random digits it yields the fixed 19-digit
// format the validators enforce.
const cardNumberBIN = "622202"

// GenerateCardNumber returns a fresh 19-digit card number. Uniqueness is
// enforced by the accounts table, not here.
func GenerateCardNumber() string {
	return cardNumberBIN + randomDigits(19-len(cardNumberBIN))
}

// GenerateCVV returns a random 3-digit CVV for a new credit card.
func GenerateCVV() string {
	return randomDigits(3)
}

// GenerateVerificationCode returns a random 6-digit password-reset code.
func GenerateVerificationCode() string {
	return randomDigits(6)
}

func randomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform source is
			// broken; treat that as unrecoverable.
			panic(err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String()
}
