package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	keyLength        = 32 // AES-256
	saltLength       = 16

	// SaltKey слот, в котором хранится соль для ключа.
	SaltKey = "sealedStore.salt"
)

var ErrEmptyPassphrase = errors.New("passphrase is empty")

// Store key-value слот, совпадает с queue.Store.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// SealedStore шифрует значения AES-GCM перед записью во внутреннее
// хранилище. Ключ выводится из парольной фразы через PBKDF2, соль лежит
// в том же хранилище открыто.
type SealedStore struct {
	inner Store
	aead  cipher.AEAD
}

func NewSealedStore(ctx context.Context, inner Store, passphrase string) (*SealedStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	salt, err := inner.Load(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	if len(salt) == 0 {
		salt = make([]byte, saltLength)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		if err := inner.Save(ctx, SaltKey, salt); err != nil {
			return nil, fmt.Errorf("save salt: %w", err)
		}
	}

	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keyLength, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &SealedStore{inner: inner, aead: aead}, nil
}

func (s *SealedStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.inner.Load(ctx, key)
	if err != nil || len(raw) == 0 {
		return raw, err
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return nil, fmt.Errorf("decrypt %s: ciphertext too short", key)
	}

	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], []byte(key))
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", key, err)
	}

	return plain, nil
}

func (s *SealedStore) Save(ctx context.Context, key string, data []byte) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	// ключ слота идет в additional data, чтобы значения нельзя было переставить
	sealed := s.aead.Seal(nonce, nonce, data, []byte(key))

	return s.inner.Save(ctx, key, sealed)
}
