package hashing

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// DefaultArgon2Memory is the default memory cost in KiB (64 MiB).
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the default number of passes over memory.
	DefaultArgon2Time uint32 = 3

	// DefaultArgon2Threads is the default degree of parallelism.
	DefaultArgon2Threads uint8 = 2

	// DefaultArgon2KeyLen is the default derived key length in bytes.
	DefaultArgon2KeyLen uint32 = 32

	// DefaultArgon2SaltLen is the default random salt length in bytes.
	DefaultArgon2SaltLen uint32 = 16
)

// Argon2Options configures an [Argon2idHasher].
//
// Every parameter is written into the output hash, so changing options only
// affects new hashes; old ones keep verifying with their own parameters.
type Argon2Options struct {
	// Memory is the memory cost in KiB. Minimum: 8 * Threads.
	Memory uint32

	// Time is the number of iterations. Minimum: 1.
	Time uint32

	// Threads is the degree of parallelism. Minimum: 1.
	Threads uint8

	// KeyLen is the length of the derived key in bytes. Minimum: 4.
	KeyLen uint32

	// SaltLen is the length of the random salt in bytes. Minimum: 8.
	SaltLen uint32
}

// DefaultArgon2Options returns Argon2Options with the recommended defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

func (o Argon2Options) validate() error {
	switch {
	case o.Time < 1:
		return fmt.Errorf("%w: argon2 time must be >= 1, got %d", ErrInvalidOption, o.Time)
	case o.Threads < 1:
		return fmt.Errorf("%w: argon2 threads must be >= 1, got %d", ErrInvalidOption, o.Threads)
	case o.Memory < 8*uint32(o.Threads):
		return fmt.Errorf("%w: argon2 memory %d KiB is below 8*threads", ErrInvalidOption, o.Memory)
	case o.KeyLen < 4:
		return fmt.Errorf("%w: argon2 key length must be >= 4, got %d", ErrInvalidOption, o.KeyLen)
	case o.SaltLen < 8:
		return fmt.Errorf("%w: argon2 salt length must be >= 8, got %d", ErrInvalidOption, o.SaltLen)
	}
	return nil
}

// Argon2idHasher hashes passwords using Argon2id and encodes the result in
// PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// Salt and key use unpadded standard base64.
//
// Argon2idHasher is immutable after construction and safe for concurrent use.
type Argon2idHasher struct {
	opts Argon2Options
}

// NewArgon2idHasher constructs an Argon2idHasher.
// Returns [ErrInvalidOption] if any parameter is out of range.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Argon2idHasher{opts: opts}, nil
}

// Driver returns [DriverArgon2id].
func (h *Argon2idHasher) Driver() DriverName { return DriverArgon2id }

// Options returns the configured parameter set.
func (h *Argon2idHasher) Options() Argon2Options { return h.opts }

// Hash derives a key from password and a fresh random salt.
func (h *Argon2idHasher) Hash(password string) ([]byte, error) {
	salt := make([]byte, h.opts.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("hashing: argon2id: failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen)
	p := phc{
		version: argon2.Version,
		memory:  h.opts.Memory,
		time:    h.opts.Time,
		threads: h.opts.Threads,
		salt:    salt,
		key:     key,
	}
	return p.encode(), nil
}

// Verify recomputes the key with the parameters stored in hashed and
// compares it in constant time.
func (h *Argon2idHasher) Verify(hashed []byte, password string) (bool, error) {
	p, err := decodePHC(hashed)
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(key, p.key) == 1, nil
}

// NeedsRehash returns true if any stored parameter differs from the
// configured options.
func (h *Argon2idHasher) NeedsRehash(hashed []byte) (bool, error) {
	p, err := decodePHC(hashed)
	if err != nil {
		return false, err
	}
	return p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		uint32(len(p.key)) != h.opts.KeyLen, nil
}

// phc is a decoded Argon2id PHC string.
type phc struct {
	version int
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (p phc) encode() []byte {
	return fmt.Appendf(nil, "$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		DriverArgon2id, p.version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

func decodePHC(hashed []byte) (phc, error) {
	if d, ok := DetectDriver(hashed); !ok || d != DriverArgon2id {
		return phc{}, fmt.Errorf("%w: hash does not appear to be argon2id", ErrAlgorithmMismatch)
	}

	// The leading "$" yields an empty first segment.
	parts := strings.Split(string(bytes.TrimSpace(hashed)), "$")
	if len(parts) != 6 {
		return phc{}, fmt.Errorf("%w: expected 5 PHC segments, got %d", ErrInvalidHash, len(parts)-1)
	}

	var p phc
	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return phc{}, fmt.Errorf("%w: missing version segment", ErrInvalidHash)
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != argon2.Version {
		return phc{}, fmt.Errorf("%w: unsupported argon2 version %q", ErrInvalidHash, version)
	}
	p.version = v

	var seen int
	for _, kv := range strings.Split(parts[3], ",") {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return phc{}, fmt.Errorf("%w: malformed parameter %q", ErrInvalidHash, kv)
		}
		switch name {
		case "m":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return phc{}, fmt.Errorf("%w: memory: %v", ErrInvalidHash, err)
			}
			p.memory = uint32(n)
		case "t":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return phc{}, fmt.Errorf("%w: time: %v", ErrInvalidHash, err)
			}
			p.time = uint32(n)
		case "p":
			n, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return phc{}, fmt.Errorf("%w: threads: %v", ErrInvalidHash, err)
			}
			p.threads = uint8(n)
		default:
			return phc{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidHash, name)
		}
		seen++
	}
	if seen != 3 || p.time < 1 || p.threads < 1 {
		return phc{}, fmt.Errorf("%w: incomplete parameter segment %q", ErrInvalidHash, parts[3])
	}

	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return phc{}, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return phc{}, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(p.key) < 4 {
		return phc{}, fmt.Errorf("%w: key too short", ErrInvalidHash)
	}
	return p, nil
}
