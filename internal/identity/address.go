package identity

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address digests are defined on RIPEMD-160
)

const (
	digestLen   = 20
	checksumLen = 4
	addressLen  = 1 + digestLen + checksumLen
)

// Network values carried in the first byte of an address.
const (
	NetworkMain    byte = 0x00
	NetworkStation byte = 0x88
	NetworkGroup   byte = 0x10
)

// Address is a decoded base58 account address.
type Address struct {
	Network byte
	Digest  [digestLen]byte
}

// NewAddress derives the base58 address for a key fingerprint:
// network || RIPEMD-160(SHA-256(fingerprint)) || checksum.
func NewAddress(fingerprint []byte, network byte) string {
	sum := sha256.Sum256(fingerprint)
	h := ripemd160.New()
	h.Write(sum[:])
	digest := h.Sum(nil)

	payload := make([]byte, 0, addressLen)
	payload = append(payload, network)
	payload = append(payload, digest...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload)
}

// VerifyAddress decodes a base58 address and checks its length and checksum.
func VerifyAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, &FormatError{Input: s, Reason: "not base58"}
	}
	if len(raw) != addressLen {
		return Address{}, &FormatError{Input: s, Reason: fmt.Sprintf("decoded length %d, want %d", len(raw), addressLen)}
	}

	body, sum := raw[:1+digestLen], raw[1+digestLen:]
	if !bytes.Equal(checksum(body), sum) {
		return Address{}, fmt.Errorf("%s: %w", s, ErrChecksum)
	}

	var addr Address
	addr.Network = body[0]
	copy(addr.Digest[:], body[1:])
	return addr, nil
}

// checksum is the first four bytes of SHA-256(SHA-256(data)).
func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}
