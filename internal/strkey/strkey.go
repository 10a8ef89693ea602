// Package strkey wraps the Stellar strkey codec for account public keys
// (G...) so they can be bound as text values.
package strkey

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/stellar/go/crc16"
	stellarstrkey "github.com/stellar/go/strkey"
)

// VersionAccountID is the strkey version byte for account ids ('G').
const VersionAccountID = stellarstrkey.VersionByteAccountID

// EncodedLen is the length of an encoded account id.
const EncodedLen = 56

var (
	ErrInvalidLength   = errors.New("strkey: invalid length")
	ErrInvalidEncoding = errors.New("strkey: invalid base32 encoding")
	ErrInvalidVersion  = errors.New("strkey: invalid version byte")
	ErrInvalidChecksum = errors.New("strkey: invalid checksum")
)

// PublicKey is an ed25519 account public key.
type PublicKey struct {
	key [ed25519.PublicKeySize]byte
}

// FromBytes builds a PublicKey from a raw 32 byte ed25519 key.
func FromBytes(raw []byte) (PublicKey, error) {
	var pk PublicKey
	if len(raw) != ed25519.PublicKeySize {
		return pk, fmt.Errorf("%w: raw key is %d bytes", ErrInvalidLength, len(raw))
	}
	copy(pk.key[:], raw)
	return pk, nil
}

// ParsePublicKey decodes a G... account id.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	err := pk.UnmarshalText([]byte(s))
	return pk, err
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	if len(text) != EncodedLen {
		return fmt.Errorf("%w: got %d characters", ErrInvalidLength, len(text))
	}
	// The first character carries the top five bits of the version byte.
	if text[0] != 'G' {
		return fmt.Errorf("%w: prefix %q", ErrInvalidVersion, text[0])
	}
	raw, err := stellarstrkey.Decode(VersionAccountID, string(text))
	if err != nil {
		return classify(err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: decoded key is %d bytes", ErrInvalidLength, len(raw))
	}
	var out PublicKey
	copy(out.key[:], raw)
	// Non-canonical trailing bits decode fine but re-encode differently.
	if out.String() != string(text) {
		return ErrInvalidEncoding
	}
	*pk = out
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, stellarstrkey.ErrInvalidVersionByte):
		return fmt.Errorf("%w: %v", ErrInvalidVersion, err)
	case errors.Is(err, crc16.ErrInvalidChecksum):
		return fmt.Errorf("%w: %v", ErrInvalidChecksum, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// String returns the canonical G... encoding.
func (pk PublicKey) String() string {
	return stellarstrkey.MustEncode(VersionAccountID, pk.key[:])
}

// Bytes returns the raw key as an ed25519.PublicKey.
func (pk PublicKey) Bytes() ed25519.PublicKey {
	out := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(out, pk.key[:])
	return out
}
