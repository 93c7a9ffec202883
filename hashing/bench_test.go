package hashing_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/go-personal-data/hashing"
)

// Note: bcrypt is intentionally slow. The Cost12 benchmarks show the real
// production cost; MinCost measures wrapper overhead only.

func BenchmarkBcrypt_MinCost_Hash(b *testing.B) {
	h, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Hash("bench-password")
	}
}

func BenchmarkBcrypt_MinCost_Verify(b *testing.B) {
	h, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	hashed, _ := h.Hash("bench-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Verify(hashed, "bench-password")
	}
}

func BenchmarkHashPassword_Cost12(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = hashing.HashPassword("bench-password")
	}
}

func BenchmarkIsValid_Cost12(b *testing.B) {
	hashed, _ := hashing.HashPassword("bench-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = hashing.IsValid(hashed, "bench-password")
	}
}

func BenchmarkArgon2id_Default_Hash(b *testing.B) {
	h, _ := hashing.NewArgon2idHasher(hashing.DefaultArgon2Options())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Hash("bench-password")
	}
}

func BenchmarkArgon2id_Default_Verify(b *testing.B) {
	h, _ := hashing.NewArgon2idHasher(hashing.DefaultArgon2Options())
	hashed, _ := h.Hash("bench-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Verify(hashed, "bench-password")
	}
}
