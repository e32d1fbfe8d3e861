// Package codegen implements address code and API key generation on
// crypto/rand.
package codegen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"wasul/config"
	"wasul/internal/domain/service"
	"wasul/internal/errors"
)

// Well-known city abbreviations. Unknown cities fall back to a
// deterministic abbreviation of their name.
var cityCodes = map[string]string{
	"muscat":  "MUS",
	"salalah": "SAL",
	"sohar":   "SOH",
	"nizwa":   "NIZ",
	"sur":     "SUR",
	"ibri":    "IBR",
}

const (
	suffixDigits  = 4
	letters       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	keyPrefix     = "omaddr_"
	keyEntropyLen = 16 // bytes; hex-encoded to 32 chars
)

type addressCodeGenerator struct {
	countryPrefix string
}

// NewAddressCodeGenerator creates the address code generator configured
// with the country prefix.
func NewAddressCodeGenerator(cfg *config.Config) service.AddressCodeGenerator {
	prefix := "OM"
	if cfg != nil && cfg.AddressCode != nil && cfg.AddressCode.CountryPrefix != "" {
		prefix = cfg.AddressCode.CountryPrefix
	}

	return &addressCodeGenerator{countryPrefix: prefix}
}

// Generate returns a candidate code like "OM-MUS-4729A". The city segment
// is deterministic; the suffix carries the entropy (10^4 digits x 26
// letters per prefix).
func (g *addressCodeGenerator) Generate(city string) string {
	var suffix strings.Builder
	for range suffixDigits {
		suffix.WriteByte('0' + byte(randInt(10)))
	}
	suffix.WriteByte(letters[randInt(len(letters))])

	return fmt.Sprintf("%s-%s-%s", g.countryPrefix, CityAbbreviation(city), suffix.String())
}

// CityAbbreviation derives the deterministic 3-letter city segment:
// the well-known table first, otherwise the first three letters of the
// city name uppercased, padded with 'X' for very short names.
func CityAbbreviation(city string) string {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if code, ok := cityCodes[normalized]; ok {
		return code
	}

	var abbr strings.Builder
	for _, r := range normalized {
		if !unicode.IsLetter(r) {
			continue
		}
		abbr.WriteRune(unicode.ToUpper(r))
		if abbr.Len() == 3 {
			break
		}
	}
	for abbr.Len() < 3 {
		abbr.WriteByte('X')
	}

	return abbr.String()
}

// randInt draws a uniform int in [0, n) from crypto/rand. The code space
// is small enough that biased or predictable draws would make codes
// guessable across registrations.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// there is no meaningful fallback for a security-relevant draw.
		panic(errors.Wrap(err, "crypto/rand unavailable"))
	}

	return int(v.Int64())
}

type apiKeyGenerator struct{}

// NewAPIKeyGenerator creates the partner key generator.
func NewAPIKeyGenerator() service.APIKeyGenerator {
	return &apiKeyGenerator{}
}

// NewKey returns "omaddr_" followed by 32 hex characters of crypto/rand
// entropy (128 bits), matching the token format partners already integrate
// against.
func (g *apiKeyGenerator) NewKey() (string, error) {
	buf := make([]byte, keyEntropyLen)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read key entropy")
	}

	return keyPrefix + hex.EncodeToString(buf), nil
}
