package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	codeMin  = 100000
	codeSpan = 900000
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateVerificationCode generates a 6-digit numeric code in [100000, 999999],
// sampled uniformly (rejection sampling avoids modulo bias).
func GenerateVerificationCode() (string, error) {
	// Largest multiple of codeSpan below 2^32.
	limit := uint32((1 << 32) / uint64(codeSpan) * uint64(codeSpan))
	var buf [4]byte
	for {
		if _, err := randomRead(buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		n := binary.BigEndian.Uint32(buf[:])
		if n < limit {
			return fmt.Sprintf("%06d", codeMin+n%codeSpan), nil
		}
	}
}
