package codegen

// Package codegen produces the 6-digit one-time codes used by verification challenges.

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"strconv"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/config"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

const (
	codeMin   = 100000
	codeRange = 900000 // codeMin..999999 inclusive
)

var (
	_ ports.CodeGenerator = CryptoGenerator{}
	_ ports.CodeGenerator = MathGenerator{}
)

// CryptoGenerator draws codes from crypto/rand.
type CryptoGenerator struct{}

func (CryptoGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}

// MathGenerator draws codes from math/rand/v2. Not suitable where codes guard anything sensitive.
type MathGenerator struct{}

func (MathGenerator) Generate() (string, error) {
	return strconv.Itoa(codeMin + mathrand.Intn(codeRange)), nil
}

// New returns the generator for src; unknown sources fall back to crypto.
//
//nolint:ireturn // callers select the source from config at runtime.
func New(src config.CodeSource) ports.CodeGenerator {
	if src == config.CodeSourceMath {
		return MathGenerator{}
	}
	return CryptoGenerator{}
}
