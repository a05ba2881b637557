package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid download token")
	ErrTokenExpired = errors.New("download token expired")
)

// SignedFile is the payload carried by a download token.
type SignedFile struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"exp"`
}

// SignedURLSigner creates and validates HMAC-signed download tokens.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a token of the form base64(payload).hex(hmac).
func (s *SignedURLSigner) Generate(id, relPath string) (string, time.Time, error) {
	if id == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("id and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	file := SignedFile{ID: id, Path: relPath, ExpiresAt: s.now().Add(s.ttl).UTC().Truncate(time.Second)}
	raw, err := json.Marshal(file)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode token: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + s.sign(payload), file.ExpiresAt, nil
}

// Parse validates the signature and expiry. allowExpired skips the expiry check for cleanup.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (*SignedFile, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || signature == "" {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(signature)) {
		return nil, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var file SignedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, ErrInvalidToken
	}
	if !allowExpired && s.now().After(file.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return &file, nil
}

func (s *SignedURLSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	return fmt.Sprintf("%x", mac.Sum(nil))
}
