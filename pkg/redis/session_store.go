package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

const sessionKeyPrefix = "admin_session:"

var (
	// ErrSessionNotFound is returned when the session expired or was never created.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCorrupt means the stored blob could not be opened with this store's key.
	ErrSessionCorrupt = errors.New("session payload corrupt")
)

// SessionData is what an admin cookie session resolves to.
type SessionData struct {
	AdminID      string    `json:"adminId"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionStore keeps admin sessions in Redis sealed with AES-GCM. The session
// id is bound as additional data, so a payload copied under another id does
// not open.
type SessionStore struct {
	aead cipher.AEAD
}

var (
	setSessionValue = Set
	getSessionValue = Get
	delSessionValue = func(ctx context.Context, key string) error { return Del(ctx, key) }
	nonceReader     = rand.Reader

	marshalSessionJSON = json.Marshal
)

// NewSessionStore takes a 32 byte key as 64 hex characters.
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SessionStore{aead: aead}, nil
}

func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, ttl time.Duration) error {
	payload, err := marshalSessionJSON(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	sealed, err := s.seal(sessionID, payload)
	if err != nil {
		return err
	}
	return setSessionValue(ctx, sessionKeyPrefix+sessionID, sealed, ttl)
}

func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	sealed, err := getSessionValue(ctx, sessionKeyPrefix+sessionID)
	switch {
	case errors.Is(err, Nil):
		return nil, ErrSessionNotFound
	case err != nil:
		return nil, err
	}

	payload, err := s.open(sessionID, sealed)
	if err != nil {
		return nil, err
	}
	var data SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
	}
	return &data, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKeyPrefix+sessionID)
}

// seal returns base64(nonce || ciphertext).
func (s *SessionStore) seal(sessionID string, plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(nonceReader, nonce); err != nil {
		return "", fmt.Errorf("session nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, plaintext, []byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *SessionStore) open(sessionID, sealed string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < s.aead.NonceSize() {
		return nil, ErrSessionCorrupt
	}
	nonce, body := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, body, []byte(sessionID))
	if err != nil {
		return nil, ErrSessionCorrupt
	}
	return plaintext, nil
}
