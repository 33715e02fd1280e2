package storage

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealing errors.
var (
	ErrPassphraseTooWeak = errors.New("storage: passphrase too weak (minimum 8 characters)")
	ErrUnsealFailed      = errors.New("storage: unseal failed - wrong passphrase or corrupted data")
	ErrNotSealed         = errors.New("storage: payload is not sealed")
)

// sealMagic prefixes every sealed payload so Load can tell sealed and
// plain documents apart.
const sealMagic = "SSEAL1"

const (
	// MinPassphraseLength is the minimum accepted passphrase length.
	MinPassphraseLength = 8

	saltLength = 16

	// Argon2id parameters for passphrase key derivation.
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = chacha20poly1305.KeySize
)

// ValidatePassphrase checks the passphrase meets the minimum strength.
func ValidatePassphrase(passphrase []byte) error {
	if len(passphrase) < MinPassphraseLength {
		return ErrPassphraseTooWeak
	}
	return nil
}

// seal encrypts plaintext with a key derived from passphrase.
//
// Layout: magic | salt(16) | nonce(24) | ciphertext. The salt is
// generated fresh per seal so the same document never produces the
// same blob twice.
func seal(plaintext, passphrase []byte) ([]byte, error) {
	if err := ValidatePassphrase(passphrase); err != nil {
		return nil, err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("storage: generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("storage: init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("storage: generate nonce: %w", err)
	}

	out := make([]byte, 0, len(sealMagic)+len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// unseal reverses seal.
func unseal(blob, passphrase []byte) ([]byte, error) {
	if !isSealed(blob) {
		return nil, ErrNotSealed
	}
	if err := ValidatePassphrase(passphrase); err != nil {
		return nil, err
	}

	rest := blob[len(sealMagic):]
	if len(rest) < saltLength+chacha20poly1305.NonceSizeX {
		return nil, ErrUnsealFailed
	}
	salt := rest[:saltLength]
	nonce := rest[saltLength : saltLength+chacha20poly1305.NonceSizeX]
	ciphertext := rest[saltLength+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("storage: init cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrUnsealFailed
	}
	return plaintext, nil
}

// isSealed reports whether blob carries the seal header.
func isSealed(blob []byte) bool {
	return len(blob) >= len(sealMagic) && string(blob[:len(sealMagic)]) == sealMagic
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}
