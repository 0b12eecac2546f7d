package util

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

const couponAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewTransactionID returns a provider-style payment transaction identifier.
func NewTransactionID() string {
	return fmt.Sprintf("txn_%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewCouponCode returns a random coupon code with the given prefix,
// e.g. "SALE-7KQ2M9XD". Ambiguous characters (0/O, 1/I) are excluded.
func NewCouponCode(prefix string, length int) string {
	if length <= 0 {
		length = 8
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = couponAlphabet[rand.Intn(len(couponAlphabet))]
	}
	if prefix == "" {
		return string(b)
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), string(b))
}
