// utils/random.go
package utils

import (
	"crypto/rand"
	"math/big"
	"time"
)

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters drawn from an unambiguous
// uppercase alphanumeric charset.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		b[i] = codeCharset[idx.Int64()]
	}
	return string(b)
}

// GenerateInvoiceCode builds a human-readable, date-sortable invoice code.
// Uniqueness is not checked here; the unique index on invoice_code is the
// backstop and callers retry on collision.
func GenerateInvoiceCode() string {
	return "INV-" + time.Now().UTC().Format("20060102") + "-" + GenerateRandomString(4)
}
