package hashing

import "fmt"

// defaultHasher backs [HashPassword]. DefaultBcryptCost is always in range.
var defaultHasher = &BcryptHasher{cost: DefaultBcryptCost}

// HashPassword salts and hashes password with bcrypt at [DefaultBcryptCost].
//
// The returned bytes embed the algorithm, cost and salt, so [IsValid] needs
// nothing else to check a password against them later.
func HashPassword(password string) ([]byte, error) {
	return defaultHasher.Hash(password)
}

// IsValid reports whether password matches hashed.
//
// The driver is picked from the hash prefix, so hashes produced by any
// built-in driver (at any cost) are accepted. A wrong password is
// (false, nil); a hash that cannot be parsed is (false, err) with err
// wrapping [ErrInvalidHash].
func IsValid(hashed []byte, password string) (bool, error) {
	d, ok := DetectDriver(hashed)
	if !ok {
		return false, fmt.Errorf("%w: unrecognised hash prefix", ErrInvalidHash)
	}
	switch d {
	case DriverArgon2id:
		// Verification reads every parameter from the hash itself.
		return (&Argon2idHasher{}).Verify(hashed, password)
	default:
		return defaultHasher.Verify(hashed, password)
	}
}
