// Package security seals small local files, currently only the session
// store. Callers hold passphrase-like secrets (an environment value),
// never raw cipher keys, so the only way to build an Encryptor is
// through key derivation.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters, interactive profile
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	derivedBytes = 32
)

var (
	ErrEmptySecret = errors.New("empty secret")
	ErrEncryption  = errors.New("encryption failed")
	ErrDecryption  = errors.New("decryption failed")
)

// Encryptor seals and opens byte blobs.
type Encryptor interface {
	Encrypt(data []byte) ([]byte, error)
	Decrypt(data []byte) ([]byte, error)
}

// DeriveKey stretches an arbitrary secret into an AES-256 key. The salt
// must be stable per installation so the sealed file survives restarts.
func DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return scrypt.Key(secret, salt, scryptN, scryptR, scryptP, derivedBytes)
}

// NewDerivedEncryptor builds an AES-GCM encryptor from a passphrase-like
// secret. The blob layout is nonce || ciphertext, with a fresh random
// nonce per Encrypt call.
func NewDerivedEncryptor(secret, salt []byte) (Encryptor, error) {
	key, err := DeriveKey(secret, salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrEncryption
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrEncryption
	}
	return &derivedEncryptor{aead: aead}, nil
}

type derivedEncryptor struct {
	aead cipher.AEAD
}

func (e *derivedEncryptor) Encrypt(data []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, ErrEncryption
	}
	return e.aead.Seal(nonce, nonce, data, nil), nil
}

func (e *derivedEncryptor) Decrypt(data []byte) ([]byte, error) {
	if len(data) < e.aead.NonceSize() {
		return nil, ErrDecryption
	}
	nonce, sealed := data[:e.aead.NonceSize()], data[e.aead.NonceSize():]
	plain, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plain, nil
}
