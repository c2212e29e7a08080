package bank

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// NewTransactionID returns an id like TXN-9f1c... — unique per process and
// across restarts, unlike the original six-digit roll.
func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}

// NewAccountNumber returns a ten-digit account number with a non-zero lead.
func NewAccountNumber() (string, error) {
	const digits = "0123456789"
	b := make([]byte, 10)
	for i := range b {
		hi := int64(10)
		if i == 0 {
			hi = 9
		}
		n, err := rand.Int(rand.Reader, big.NewInt(hi))
		if err != nil {
			return "", Wrap(KindInternal, "account number generation", err)
		}
		if i == 0 {
			b[i] = digits[n.Int64()+1]
		} else {
			b[i] = digits[n.Int64()]
		}
	}
	return string(b), nil
}
