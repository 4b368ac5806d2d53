package adapters

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/smartbiz/backend/internal/application/adapter"
)

const maxCodeDigits = 18

type credentialGenerator struct {
	random io.Reader
}

// NewCredentialGenerator returns a generator drawing from crypto/rand.
func NewCredentialGenerator() adapter.CredentialGenerator {
	return &credentialGenerator{random: rand.Reader}
}

// NumericCode draws a uniform number below 10^digits and left-pads it with zeros.
func (g *credentialGenerator) NumericCode(digits int) (string, error) {
	if digits <= 0 || digits > maxCodeDigits {
		return "", fmt.Errorf("code length must be between 1 and %d, got %d", maxCodeDigits, digits)
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(g.random, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	code := n.String()
	return strings.Repeat("0", digits-len(code)) + code, nil
}
