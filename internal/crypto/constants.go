package crypto

const (
	// FingerprintContext keys the fingerprint hash for domain separation.
	FingerprintContext = "smartemailing:token:v1"

	// FingerprintSize is the number of hash bytes kept in a fingerprint.
	FingerprintSize = 8
)
