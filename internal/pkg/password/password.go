package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
)

// HashPassword hashes a raw password with bcrypt at the library default cost.
// Empty passwords are rejected here rather than stored as a valid hash.
func HashPassword(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// ComparePassword checks a raw password against a stored bcrypt hash.
// A mismatch returns ErrComparisonFailed; malformed hashes surface as-is so
// data corruption is distinguishable from a wrong password.
func ComparePassword(hashed, raw string) error {
	if hashed == "" || raw == "" {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}
	return nil
}
