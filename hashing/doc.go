// Package hashing hashes and verifies passwords on top of
// golang.org/x/crypto.
//
// # Quick start
//
//	hashed, err := hashing.HashPassword("my-secret-password")
//	if err != nil { log.Fatal(err) }
//
//	ok, err := hashing.IsValid(hashed, "my-secret-password") // true, nil
//
// Store hashed as-is. It is self-describing: algorithm, cost and salt are
// all encoded in it, and hashing the same password twice yields different
// bytes.
//
// # Drivers
//
// Two drivers implement [Hasher]:
//
//   - [BcryptHasher]: bcrypt, the default. Cost 12 unless configured.
//   - [Argon2idHasher]: Argon2id, memory-hard. m=64 MiB, t=3, p=2 by default.
//
// Call NeedsRehash after a successful login to find hashes produced with an
// outdated cost, then re-hash and persist.
//
// # Errors
//
// Verify never reports a corrupt hash as a plain mismatch. A truncated or
// malformed hash yields an error wrapping [ErrInvalidHash], so callers can
// distinguish a wrong password from a damaged record.
package hashing
