// Package cryptox holds the cryptographic primitives used by DiaryKeeper:
// bcrypt password hashing, argon2id key derivation and AES-GCM sealing of
// entry text.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of derived entry keys (AES-256).
const KeySize = 32

// SaltSize is the length of per-user key salts.
const SaltSize = 32

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// NewSalt returns a fresh random key salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey stretches password with salt into a KeySize-byte key using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SealText encrypts plaintext with AES-GCM under key.
//
// A fresh random nonce is generated for every call and prepended to the
// ciphertext; the result is base64 (std) encoded so it fits a TEXT column.
//
// Example:
//
//	key := DeriveKey([]byte("pw"), salt)
//	sealed, err := SealText("dear diary", key)
//	plain, err := OpenText(sealed, key)
func SealText(plaintext string, key []byte) (string, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenText reverses SealText. It fails when the text was not produced by
// SealText, was tampered with, or was sealed under another key.
func OpenText(sealed string, key []byte) (string, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	if len(raw) < aesgcm.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, ciphertext := raw[:aesgcm.NonceSize()], raw[aesgcm.NonceSize():]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
