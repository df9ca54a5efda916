package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// GenerateCode returns a random hex string of n bytes, used for account
// activation and password reset tokens.
func GenerateCode(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// OrderNumberPrefix prefixes every human-readable order number.
const OrderNumberPrefix = "EK"

// FormatOrderNumber renders an order number for a date and a four-digit
// suffix: EK<yy><mm><dd><nnnn>.
func FormatOrderNumber(t time.Time, suffix int) string {
	return fmt.Sprintf("%s%02d%02d%02d%04d", OrderNumberPrefix, t.Year()%100, int(t.Month()), t.Day(), suffix)
}

// NewOrderNumber generates an order number for now with a random suffix. Four
// digits per day collide eventually; callers retry on a uniqueness conflict.
func NewOrderNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; fall back to
		// a clock-derived suffix rather than aborting checkout.
		return FormatOrderNumber(now, int(now.UnixNano()%10000))
	}
	return FormatOrderNumber(now, int(n.Int64()))
}
