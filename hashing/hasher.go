package hashing

import "bytes"

// DriverName identifies a hashing algorithm driver.
type DriverName string

const (
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon2id selects the Argon2id driver.
	DriverArgon2id DriverName = "argon2id"
)

// Hasher is the interface satisfied by all password-hashing drivers.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Hash returns the encoded hash of password. A fresh cryptographic salt
	// is generated for every call, so two calls with the same password
	// produce different outputs.
	Hash(password string) ([]byte, error)

	// Verify reports whether password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if hashed is structurally invalid.
	//
	// Comparison is performed in constant time.
	Verify(hashed []byte, password string) (bool, error)

	// NeedsRehash returns true when hashed was produced with parameters
	// different from the hasher's current configuration.
	NeedsRehash(hashed []byte) (bool, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// DetectDriver inspects an encoded hash and returns the [DriverName] that
// produced it. It only looks at the prefix and does not validate the rest.
//
// The second return value is false when the format is not recognised.
func DetectDriver(hashed []byte) (DriverName, bool) {
	switch {
	case bytes.HasPrefix(hashed, []byte("$argon2id$")):
		return DriverArgon2id, true
	// $2a$ is what x/crypto emits; $2b$ and $2y$ come from other libraries.
	case bytes.HasPrefix(hashed, []byte("$2a$")),
		bytes.HasPrefix(hashed, []byte("$2b$")),
		bytes.HasPrefix(hashed, []byte("$2y$")):
		return DriverBcrypt, true
	default:
		return "", false
	}
}
