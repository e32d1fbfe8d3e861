// Package service defines domain service interfaces that abstract
// infrastructure details from the use cases.
package service

// AddressCodeGenerator draws candidate address codes. The city segment is
// deterministic for a given city; the numeric+letter suffix is random, so
// uniqueness is the caller's concern (checked against the store, redrawn
// on collision).
type AddressCodeGenerator interface {
	// Generate returns a candidate code like "OM-MUS-4729A".
	Generate(city string) string
}

// APIKeyGenerator mints opaque partner key tokens. Tokens must be
// unguessable; collisions are practically impossible but the ledger still
// guards issuance with a uniqueness constraint.
type APIKeyGenerator interface {
	// NewKey returns a fresh token, e.g. "omaddr_<32 hex chars>".
	NewKey() (string, error)
}
