package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the work factor used by [HashPassword] and
	// [DefaultBcryptOptions]. At cost 12 one hash takes roughly 250 ms on a
	// modern server CPU.
	//
	// Increase this value as hardware improves; aim to keep hashing time
	// between 100 ms and 500 ms for your deployment environment.
	DefaultBcryptCost = 12

	// bcryptMaxPasswordLen is the input limit of the bcrypt key schedule.
	bcryptMaxPasswordLen = 72
)

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	Cost int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptCost].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// BcryptHasher hashes passwords using bcrypt.
//
// The 16-byte salt is generated from crypto/rand by the bcrypt package and
// stored inside the Modular Crypt Format output together with the cost, so
// verification needs no external state.
//
// BcryptHasher is immutable after construction and safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher with the provided options.
// Returns [ErrInvalidOption] if Cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Driver returns [DriverBcrypt].
func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured bcrypt work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash salts and hashes password, returning the encoded form
// (e.g. "$2a$12$..."). Passwords longer than 72 bytes are rejected with
// [ErrPasswordTooLong] instead of being silently truncated.
func (h *BcryptHasher) Hash(password string) ([]byte, error) {
	if len(password) > bcryptMaxPasswordLen {
		return nil, fmt.Errorf("%w: bcrypt accepts at most %d bytes, got %d",
			ErrPasswordTooLong, bcryptMaxPasswordLen, len(password))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooLong, err)
	}
	if err != nil {
		return nil, fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return hashed, nil
}

// Verify reports whether password matches the bcrypt-encoded hash, using
// the salt and cost stored in hashed.
//
// A mismatch is (false, nil). A truncated or otherwise corrupt hash is an
// error wrapping [ErrInvalidHash]; a hash from another algorithm wraps
// [ErrAlgorithmMismatch]. Passwords longer than 72 bytes are rejected with
// [ErrPasswordTooLong], as in Hash, since bcrypt would only compare their
// first 72 bytes.
func (h *BcryptHasher) Verify(hashed []byte, password string) (bool, error) {
	if !looksLikeBcrypt(hashed) {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	if len(password) > bcryptMaxPasswordLen {
		return false, fmt.Errorf("%w: bcrypt accepts at most %d bytes, got %d",
			ErrPasswordTooLong, bcryptMaxPasswordLen, len(password))
	}
	err := bcrypt.CompareHashAndPassword(hashed, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: bcrypt: %v", ErrInvalidHash, err)
	}
	return true, nil
}

// NeedsRehash returns true if the work factor encoded in hashed differs
// from the configured cost.
func (h *BcryptHasher) NeedsRehash(hashed []byte) (bool, error) {
	if !looksLikeBcrypt(hashed) {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost(hashed)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost != h.cost, nil
}

func looksLikeBcrypt(hashed []byte) bool {
	d, ok := DetectDriver(hashed)
	return ok && d == DriverBcrypt
}
