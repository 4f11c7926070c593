package checkout

import (
	"crypto/rand"
	"fmt"
	"time"
)

// base32 without the lookalikes 0/O and 1/I.
const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const orderNumberSuffixLen = 6

// NewOrderNumber mints a public order identifier like SK-20260829-Q7MK2P.
// Uniqueness is ultimately enforced by the order_number unique index; the
// random suffix keeps collisions vanishingly rare.
func NewOrderNumber(now time.Time) (string, error) {
	buf := make([]byte, orderNumberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating order number: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("SK-%s-%s", now.UTC().Format("20060102"), string(buf)), nil
}
