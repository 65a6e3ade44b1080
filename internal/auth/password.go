package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/annerobin/therapy-booking/internal/store"
)

// PasswordKey is where the hex-encoded admin password digest lives in the
// key-value store.
const PasswordKey = "auth"

// HashPassword returns the hex-encoded SHA-256 digest of the password. The
// stored credential format is this digest, compared by equality.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyHash compares a candidate password against a stored hex digest in
// constant time.
func VerifyHash(storedHex, candidate string) bool {
	candidateHex := HashPassword(candidate)
	return subtle.ConstantTimeCompare([]byte(storedHex), []byte(candidateHex)) == 1
}

// VerifyStored checks a candidate against the digest persisted in kv. A
// missing digest means admin login is disabled: the result is false, not an
// error.
func VerifyStored(ctx context.Context, kv store.Store, candidate string) (bool, error) {
	stored, err := kv.Get(ctx, PasswordKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load password hash: %w", err)
	}
	return VerifyHash(string(stored), candidate), nil
}

// EnsurePassword persists the digest of the configured admin password when no
// digest is stored yet. With no stored digest and no configured password,
// admin login stays disabled.
func EnsurePassword(ctx context.Context, kv store.Store, password string) error {
	_, err := kv.Get(ctx, PasswordKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("load password hash: %w", err)
	}

	if password == "" {
		log.Println("ADMIN_PASSWORD is not set; admin login is disabled")
		return nil
	}

	if err := kv.Put(ctx, PasswordKey, []byte(HashPassword(password))); err != nil {
		return fmt.Errorf("store password hash: %w", err)
	}
	return nil
}
