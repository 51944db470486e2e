// Package crypto derives non-reversible fingerprints of API credentials.
//
// A fingerprint lets diagnostics and logs tell two tokens apart without
// revealing either. It is a keyed BLAKE2b-256 hash of the token, truncated to
// FingerprintSize bytes and encoded as unpadded base64url.
//
//	fp := crypto.Fingerprint(token) // e.g. "q8Vb3l0xS2E"
//
// Fingerprints are stable across processes for the same token and are not
// suitable for authentication.
package crypto
