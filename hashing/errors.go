package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hashing.IsValid(stored, password)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // stored hash is corrupt, not a wrong password
//	}
var (
	// ErrInvalidHash is returned when an encoded hash cannot be parsed
	// because it is truncated, has an unrecognised format, or carries
	// invalid parameters.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter outside the allowed range (e.g. a bcrypt cost above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmMismatch is returned by a driver's Verify or NeedsRehash
	// when the hash was produced by a different algorithm.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")

	// ErrPasswordTooLong is returned by the bcrypt driver for passwords
	// longer than 72 bytes.
	ErrPasswordTooLong = errors.New("hashing: password exceeds the algorithm's length limit")
)
