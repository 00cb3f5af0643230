// Package qr implements the stateless table-access token: a (venue, table)
// payload sealed with authenticated encryption, verifiable without a
// database round trip and tamper-evident by construction.
package qr

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"dino/internal/shared/biztime"
)

// payloadType tags table-access tokens so sealed blobs minted for other
// purposes can never be replayed against the table-resolve path.
const payloadType = "table_access"

// ErrInvalidToken is the single error returned for every verification
// failure: bad encoding, truncation, authentication failure, malformed
// payload. Decoding fails closed and never yields partial data.
var ErrInvalidToken = errors.New("invalid QR token")

// TablePayload is the sealed token content. Field order is fixed; the JSON
// marshaling of this struct is the canonical byte form, so identical input
// always produces identical plaintext bytes.
type TablePayload struct {
	VenueID     string `json:"venue_id"`
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
	Type        string `json:"type"`
	IssuedAt    int64  `json:"issued_at"`
}

// Codec seals and opens table-access tokens with XChaCha20-Poly1305 under a
// process-wide key loaded at startup.
type Codec struct {
	key []byte
}

// NormalizeKey coerces a configured key string to exactly
// chacha20poly1305.KeySize (32) bytes: shorter keys are right-padded with
// '0', longer keys are truncated. The normalization is documented behavior,
// not a silent fallback; callers should log when it fires (see Normalized).
func NormalizeKey(key string) []byte {
	b := []byte(key)
	if len(b) < chacha20poly1305.KeySize {
		padded := make([]byte, chacha20poly1305.KeySize)
		copy(padded, b)
		for i := len(b); i < chacha20poly1305.KeySize; i++ {
			padded[i] = '0'
		}
		return padded
	}
	return b[:chacha20poly1305.KeySize]
}

// Normalized reports whether NormalizeKey would alter the given key.
func Normalized(key string) bool {
	return len(key) != chacha20poly1305.KeySize
}

func NewCodec(key string) *Codec {
	return &Codec{key: NormalizeKey(key)}
}

// Mint seals (venueID, tableID, tableNumber) into a URL-safe token.
func (c *Codec) Mint(venueID, tableID string, tableNumber int) (string, error) {
	if venueID == "" {
		return "", fmt.Errorf("venue ID is required")
	}
	if tableID == "" {
		return "", fmt.Errorf("table ID is required")
	}
	if tableNumber <= 0 {
		return "", fmt.Errorf("table number must be positive")
	}

	payload := TablePayload{
		VenueID:     venueID,
		TableID:     tableID,
		TableNumber: tableNumber,
		Type:        payloadType,
		IssuedAt:    biztime.NowUTC().Unix(),
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Verify opens a token and returns its payload. Every failure mode returns
// ErrInvalidToken; the caller never learns whether the encoding, the
// authentication tag, or the payload structure was at fault.
func (c *Codec) Verify(token string) (*TablePayload, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrInvalidToken
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload TablePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, ErrInvalidToken
	}

	if payload.Type != payloadType || payload.VenueID == "" || payload.TableID == "" || payload.TableNumber <= 0 {
		return nil, ErrInvalidToken
	}

	return &payload, nil
}
